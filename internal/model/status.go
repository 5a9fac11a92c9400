package model

// VideoStatus represents the status of a single video in a playlist run
type VideoStatus string

const (
	// VideoStatusPending means the video is queued but not started
	VideoStatusPending VideoStatus = "pending"

	// VideoStatusDownloading means the download call is in progress
	VideoStatusDownloading VideoStatus = "downloading"

	// VideoStatusCompleted means the download call returned without error
	VideoStatusCompleted VideoStatus = "completed"

	// VideoStatusError means the download call raised an error
	VideoStatusError VideoStatus = "error"
)

// String returns the string representation of VideoStatus
func (vs VideoStatus) String() string {
	return string(vs)
}

// IsFinished returns true if the video has been processed (completed or error)
func (vs VideoStatus) IsFinished() bool {
	return vs == VideoStatusCompleted || vs == VideoStatusError
}

// TransferStatus is the status carried by a TransferEvent
type TransferStatus string

const (
	TransferDownloading TransferStatus = "downloading"
	TransferFinished    TransferStatus = "finished"
	TransferError       TransferStatus = "error"
)

// String returns the string representation of TransferStatus
func (ts TransferStatus) String() string {
	return string(ts)
}
