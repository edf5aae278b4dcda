package config

// SourceFileExt is the canonical source file extension.
const SourceFileExt = ".kst"

// SourceFileExtensions are all recognized source file extensions, the
// canonical one first.
var SourceFileExtensions = []string{SourceFileExt, ".kestrel"}

// ToolName and ToolVersion identify the compiler in generated preambles
// and cache keys.
const (
	ToolName    = "kestrelc"
	ToolVersion = "0.3.0"
)

// GeneratedFileExt is the extension of emitted translation units.
const GeneratedFileExt = ".cpp"

// BuildConfigFileName is the build configuration searched for upward
// from the compiled source, with BuildConfigFileNameAlt as fallback.
const (
	BuildConfigFileName    = "kestrel.yaml"
	BuildConfigFileNameAlt = "kestrel.yml"
)

// CacheDirName is the per-project directory holding the build cache.
const CacheDirName = ".kestrel"
