package service

import "fmt"

type ErrFileCorrupted struct {
	error
}

func NewErrFileCorrupted(message string) *ErrFileCorrupted {
	return &ErrFileCorrupted{fmt.Errorf("bad request: %s", message)}
}

func NewErrRVToolsFileCorrupted(message string) *ErrFileCorrupted {
	return NewErrFileCorrupted(fmt.Sprintf("The provided RVTools file is corrupted: %s", message))
}

type ErrNoAssessment struct {
	error
}

func NewErrNoAssessment() *ErrNoAssessment {
	return &ErrNoAssessment{fmt.Errorf("no assessment loaded: upload an RVTools export first")}
}

type ErrInvalidWaveMode struct {
	error
}

func NewErrInvalidWaveMode(mode string) *ErrInvalidWaveMode {
	return &ErrInvalidWaveMode{fmt.Errorf("invalid wave mode %q: expected %q or %q", mode, "complexity", "network")}
}
