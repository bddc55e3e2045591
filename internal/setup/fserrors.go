package setup

import (
	"errors"
	"syscall"

	"github.com/bosunhq/bosun/internal/output"
)

// errnoMessages maps the filesystem failures worth a precise diagnostic to
// their conventional descriptions. Anything else falls back to the error's
// own text.
var errnoMessages = map[syscall.Errno]string{
	syscall.EACCES:       "permission denied",
	syscall.EPERM:        "operation not permitted",
	syscall.ENOENT:       "no such file or directory",
	syscall.EISDIR:       "is a directory",
	syscall.ENOTDIR:      "not a directory",
	syscall.ENOSPC:       "no space left on device",
	syscall.EROFS:        "read-only file system",
	syscall.EMFILE:       "too many open files",
	syscall.ENFILE:       "file table overflow",
	syscall.ENAMETOOLONG: "file name too long",
	syscall.EIO:          "input/output error",
}

// describeCause returns the human-readable description for a filesystem
// error, preferring the errno table over Go's wrapped error text.
func describeCause(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		if msg, ok := errnoMessages[errno]; ok {
			return msg
		}
	}
	return err.Error()
}

// fsError wraps a filesystem failure as a fatal system error carrying the
// action, the hook path, and the mapped cause.
func fsError(action, path string, cause error) *output.ExitError {
	return output.NewSystemErrorWithCause(action+" "+path+": "+describeCause(cause), cause)
}
