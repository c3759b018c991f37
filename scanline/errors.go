// errors.go - Stage construction errors

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine

License: GPLv3 or later
*/

package scanline

import (
	"errors"
	"fmt"
)

// Configuration defects detected while building a stage or pipeline.
// Process never returns errors; everything is validated up front.
var (
	ErrInvalidDepth  = errors.New("invalid element depth")
	ErrInvalidCount  = errors.New("invalid pixel count")
	ErrInvalidStride = errors.New("invalid stride")
	ErrInvalidKind   = errors.New("invalid stage kind")
	ErrChainMismatch = errors.New("stage chain mismatch")

	ErrInvalidStrategy     = errors.New("invalid strategy")
	ErrStrategyUnavailable = errors.New("accelerated strategy unavailable on this host")
)

// StageError provides detailed error context for stage setup failures
type StageError struct {
	Operation string // What was being configured
	Details   string // Additional error context
	Err       error  // Underlying sentinel
}

func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scanline %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("scanline %s failed: %s", e.Operation, e.Details)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(op string, err error, format string, args ...any) error {
	return &StageError{
		Operation: op,
		Details:   fmt.Sprintf(format, args...),
		Err:       err,
	}
}
