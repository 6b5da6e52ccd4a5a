package fileindex

import (
	"os"
	"syscall"
)

// inodeKey extracts the (device, inode) pair identifying the underlying
// file, used to detect symlink cycles during traversal (spec §4.1). It
// returns ok=false on platforms where the stat_t shape isn't available,
// in which case cycle detection is simply skipped for that entry.
func inodeKey(info os.FileInfo) (devIno, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return devIno{}, false
	}
	return devIno{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}
