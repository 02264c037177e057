package main

// Message constants
const (
	MsgRootShort = "Publish package assets into the public web root"
	MsgRootLong  = `apub places the public assets declared by installed plugin and theme
packages into the served web root, records every placement in a mapping
document, and fully reverses placement when a package is removed or
updated.`

	MsgInstallShort = "Place a package's declared public assets"
	MsgInstallLong  = `Read the package metadata (composer.json) in the given directory and
copy every declared extra.public entry into the web root. Each placed
file is recorded in the mapping document so it can be removed later.`

	MsgUpdateShort = "Re-place a package's public assets"
	MsgUpdateLong  = `Remove everything previously recorded for the package, then place the
assets its current metadata declares. Stale files from a previous
version are removed even if the new version no longer declares them.`

	MsgUninstallShort = "Remove a package's placed assets"
	MsgUninstallLong  = `Replay the mapping recorded for the named package and delete every
destination it placed, then clean up its asset directory. Works even
after the package's own files have been deleted from disk.`

	MsgStatusShort = "Show recorded placements"
	MsgStatusLong  = `List every package recorded in the mapping document together with its
placed files and whether each destination is still present on disk.`
)
