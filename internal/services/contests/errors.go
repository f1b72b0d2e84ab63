package contests

import "errors"

var (
	// ErrContestNotFound is returned when no contest folder matches the name
	ErrContestNotFound = errors.New("contest not found")

	// ErrInvalidContest is returned when a contest folder is missing audio,
	// a log file, or parseable timing metadata
	ErrInvalidContest = errors.New("invalid contest folder")

	// ErrUnknownAudioFile is returned when a requested audio file is not
	// part of the contest
	ErrUnknownAudioFile = errors.New("audio file not part of contest")
)
