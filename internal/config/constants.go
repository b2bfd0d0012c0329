package config

// Default paths and migration constants
const (
	// DefaultDumpPath is the default location of the WordPress export document
	DefaultDumpPath = "wordpress-dump.xml"

	// DefaultDataDir is the root of the extracted file tree
	DefaultDataDir = "data"

	// DefaultAssetsDir holds the home-gallery images loaded by the migrator
	DefaultAssetsDir = "assets/home"

	// DefaultDatabasePath is the default path for the target database
	DefaultDatabasePath = "./portfolio.db"

	// DefaultFeaturedTitle marks the project that is always pinned to
	// sort_order 0 regardless of directory enumeration order.
	DefaultFeaturedTitle = "MD Penthouse"
)

// DefaultDarkImages lists home-gallery filenames that need white overlay text.
var DefaultDarkImages = []string{"image5.png"}
