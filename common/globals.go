package common

// CompilerVersion is the current front-end core version string.
const CompilerVersion string = "0.1.0"

// ProfileFileName is the name for a TSPP build profile file.
const ProfileFileName string = "tspp-build.toml"

// SourceFileExt is the file extension for a TSPP source file.
const SourceFileExt string = ".tspp"

// CacheDirName is the compilation caching directory name.
const CacheDirName string = ".tsppcache"
