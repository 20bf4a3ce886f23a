package generator

// ProgressReporter provides callbacks for reporting generation progress.
// Implementations can display progress bars, log messages, or remain silent.
// OnFileExtracted may be called from several goroutines at once.
type ProgressReporter interface {
	// OnDiscoveryStart is called when source file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when discovery finishes.
	OnDiscoveryComplete(javaFiles, xmlFiles int)

	// OnExtractionStart is called before the candidate files are parsed.
	OnExtractionStart(totalFiles int)

	// OnFileExtracted is called after each file has been parsed.
	OnFileExtracted(fileName string)

	// OnComplete is called when the run finishes successfully.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                           {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(javaFiles, xmlFiles int) {}
func (n *NoOpProgressReporter) OnExtractionStart(totalFiles int)            {}
func (n *NoOpProgressReporter) OnFileExtracted(fileName string)             {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)                     {}
