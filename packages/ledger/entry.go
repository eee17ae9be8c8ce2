package ledger

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
)

// region EntryType ////////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// AccountRootEntry represents the root Entry of an account.
	AccountRootEntry EntryType = iota

	// DirectoryRootEntry represents the root of a paged directory.
	DirectoryRootEntry

	// DirectoryNodeEntry represents a single page of a paged directory.
	DirectoryNodeEntry

	// RippleStateEntry represents a bidirectional credit line between two accounts in one currency.
	RippleStateEntry

	// GeneratorMapEntry binds a generator id to its encrypted generator blob.
	GeneratorMapEntry
)

// EntryType represents the type of an Entry (different types persist different named fields).
type EntryType byte

// String returns a human-readable version of the EntryType.
func (e EntryType) String() string {
	return [...]string{
		"AccountRootEntry",
		"DirectoryRootEntry",
		"DirectoryNodeEntry",
		"RippleStateEntry",
		"GeneratorMapEntry",
	}[e]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Entry ////////////////////////////////////////////////////////////////////////////////////////////////////////

// Entry is the interface for the typed records that make up the ledger state. Every Entry is addressed by a 256 bit
// EntryIndex that is derived from its identifying fields.
type Entry interface {
	// Type returns the EntryType of the Entry.
	Type() EntryType

	// Index returns the EntryIndex that addresses the Entry inside the ledger.
	Index() EntryIndex

	// Clone creates a deep copy of the Entry.
	Clone() Entry

	// Bytes returns a marshaled version of the Entry.
	Bytes() []byte

	// String returns a human-readable version of the Entry.
	String() string
}

// EntryFromBytes unmarshals an Entry from a sequence of bytes.
func EntryFromBytes(data []byte) (entry Entry, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if entry, err = EntryFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Entry from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// EntryFromMarshalUtil unmarshals an Entry using a MarshalUtil (for easier unmarshalling).
func EntryFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (entry Entry, err error) {
	entryType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse EntryType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	marshalUtil.ReadSeek(-1)

	switch EntryType(entryType) {
	case AccountRootEntry:
		if entry, err = AccountRootFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse AccountRoot: %w", err)
		}
	case DirectoryRootEntry:
		if entry, err = DirectoryRootFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse DirectoryRoot: %w", err)
		}
	case DirectoryNodeEntry:
		if entry, err = DirectoryNodeFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse DirectoryNode: %w", err)
		}
	case RippleStateEntry:
		if entry, err = RippleStateFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse RippleState: %w", err)
		}
	case GeneratorMapEntry:
		if entry, err = GeneratorMapFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse GeneratorMap: %w", err)
		}
	default:
		err = errors.Errorf("unsupported EntryType (%X): %w", entryType, cerrors.ErrParseBytesFailed)
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
