// Package hooks installs the commit-prefix shim into git hook scripts.
//
// The shim is a marked block:
//
//	# --- BEGIN COMMIT-PREFIX ---
//	# Managed by commit-prefix. Do not edit between these markers.
//	commit-prefix "$@" || exit $?
//	# --- END COMMIT-PREFIX ---
//
// Only the content between the markers is managed. Existing hook scripts
// keep their other lines across install and uninstall, and a script that
// was not written by the installer is only touched with Force.
package hooks
