package entity

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidAddress    = errors.New("invalid sui address format")
	ErrUnknownNetwork    = errors.New("unknown or disabled sui network")
	ErrMissingCredential = errors.New("generation api credential is not configured")
	ErrWalletFetch       = errors.New("failed to fetch wallet data from the chain")
	ErrFetchTimeout      = errors.New("wallet data fetch timed out")
	ErrGeneration        = errors.New("failed to generate roast")
	ErrGenerationTimeout = errors.New("roast generation timed out")
	ErrEmptyGeneration   = errors.New("no roast generated")
)

// ErrorKind is the user-facing classification of a failed roast.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindConfiguration     ErrorKind = "configuration"
	KindFetch             ErrorKind = "fetch"
	KindFetchTimeout      ErrorKind = "fetch_timeout"
	KindGeneration        ErrorKind = "generation"
	KindGenerationTimeout ErrorKind = "generation_timeout"
	KindEmptyGeneration   ErrorKind = "empty_generation"
	KindUnknown           ErrorKind = "unknown"
)

const (
	MsgInvalidAddress    = "Hey there! That doesn't look like a valid SUI address... Did you copy-paste it correctly, or are you trying to bamboozle me? 🤔\n\nMake sure it starts with '0x' followed by 64 hex characters! Let's try again with a real address! 🎯"
	MsgConfiguration     = "The roast kitchen is closed right now 🧯 The service is unavailable, please try again later."
	MsgFetch             = "We couldn't dig up this wallet's on-chain dirt 🕵️ Failed to fetch wallet data from the chain, please try again."
	MsgFetchTimeout      = "The blockchain took too long to spill the tea ⏳ Fetching this wallet took too long, please try again in a moment."
	MsgGeneration        = "Our roast master dropped the mic 🎤 Failed to generate a roast, please try again."
	MsgGenerationTimeout = "The roast master took too long to think of a comeback ⏳ Please try again."
	MsgEmptyGeneration   = "The roast master was left speechless 😶 No roast was generated, please try again."
	MsgUnknown           = "Oops! Either this wallet is too hot to handle, or something went wrong! 🌶️\n\nMake sure you've entered a valid SUI wallet address, and let's try roasting again! 🔥"
)

// RoastError is returned by the roast pipeline. The wrapped cause is for logs only.
type RoastError struct {
	Kind    ErrorKind
	Address string
	Err     error
}

func (e *RoastError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RoastError) Unwrap() error {
	return e.Err
}

// UserMessage returns the message shown to the user for this error.
func (e *RoastError) UserMessage() string {
	return MessageFor(e.Kind)
}

// NewRoastError classifies err and wraps it.
func NewRoastError(address string, err error) *RoastError {
	return &RoastError{Kind: KindOf(err), Address: address, Err: err}
}

// MessageFor returns the fixed user message for kind.
func MessageFor(kind ErrorKind) string {
	switch kind {
	case KindValidation:
		return MsgInvalidAddress
	case KindConfiguration:
		return MsgConfiguration
	case KindFetch:
		return MsgFetch
	case KindFetchTimeout:
		return MsgFetchTimeout
	case KindGeneration:
		return MsgGeneration
	case KindGenerationTimeout:
		return MsgGenerationTimeout
	case KindEmptyGeneration:
		return MsgEmptyGeneration
	default:
		return MsgUnknown
	}
}

// KindOf classifies err. Order matters: timeouts are checked before the
// generic fetch and generation sentinels they are usually wrapped with.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var re *RoastError
	if errors.As(err, &re) {
		return re.Kind
	}
	switch {
	case errors.Is(err, ErrInvalidAddress), errors.Is(err, ErrUnknownNetwork):
		return KindValidation
	case errors.Is(err, ErrMissingCredential):
		return KindConfiguration
	case errors.Is(err, ErrFetchTimeout):
		return KindFetchTimeout
	case errors.Is(err, ErrWalletFetch):
		if errors.Is(err, context.DeadlineExceeded) {
			return KindFetchTimeout
		}
		return KindFetch
	case errors.Is(err, ErrGenerationTimeout):
		return KindGenerationTimeout
	case errors.Is(err, ErrEmptyGeneration):
		return KindEmptyGeneration
	case errors.Is(err, ErrGeneration):
		if errors.Is(err, context.DeadlineExceeded) {
			return KindGenerationTimeout
		}
		return KindGeneration
	default:
		return KindUnknown
	}
}
