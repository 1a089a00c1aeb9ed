package tree

import "fmt"

// Status is the result of a tree operation. The zero value, Success,
// means the operation committed; any other value names the reason it
// did not. Status never carries a stack trace or wraps another error:
// operations report outcomes as plain values, never panics.
type Status int32

const (
	Success Status = iota
	InvalidParentDir
	ParentNotDir
	FileAlreadyExists
	DoesntExistInDir
	DirNotEmpty
	CouldntAllocateInode
	CouldntAddEntry
	FailedRemoveFromDir
	FailedDeleteInode
	FileNotFound
	MoveToItself
)

var statusNames = [...]string{
	"SUCCESS",
	"INVALID_PARENT_DIR",
	"PARENT_NOT_DIR",
	"FILE_ALREADY_EXISTS",
	"DOESNT_EXIST_IN_DIR",
	"DIR_NOT_EMPTY",
	"COULDNT_ALLOCATE_INODE",
	"COULDNT_ADD_ENTRY",
	"FAILED_REMOVE_FROM_DIR",
	"FAILED_DELETE_INODE",
	"FILE_NOT_FOUND",
	"MOVE_TO_ITSELF",
}

// String returns the status's symbolic name.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int32(s))
	}
	return statusNames[s]
}

// Ok reports whether the operation committed.
func (s Status) Ok() bool {
	return s == Success
}

// Error lets Status satisfy the error interface for callers that prefer
// to treat a failed operation as an error value; Ok() operations should
// not be passed through this.
func (s Status) Error() string {
	return s.String()
}
