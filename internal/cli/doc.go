// Package cli defines the lobby command line.
//
//	lobby            run the kiosk
//	lobby check      fetch every section once and report
//	lobby init       write config.toml with an interactive form
//	lobby version    print build information
//
// --config, --env-file and --poll apply to every command that reads the
// configuration. Flags win over LOBBY_* variables, which win over the file.
package cli
