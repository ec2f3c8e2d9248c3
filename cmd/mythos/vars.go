package cli

import (
	"github.com/mythoslabs/mythos/internal/config"
)

// Shared CLI flags
var (
	cfgFile  string
	headless bool
	verbose  bool
	quiet    bool
)

// AppVersion is set at build time with -ldflags "-X".
var AppVersion = "dev"

// AppConfig holds the loaded configuration (set by main)
var AppConfig *config.Config
