package ledger

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
)

// region GeneratorMap /////////////////////////////////////////////////////////////////////////////////////////////////

// GeneratorMap binds a generator id (the account id of the generator's public key) to the encrypted generator blob
// that was registered when the account was claimed. A generator id exists in the ledger at most once.
type GeneratorMap struct {
	generatorID AccountID
	generator   []byte
}

// NewGeneratorMap creates a GeneratorMap that binds the given generator id to the given encrypted generator blob.
func NewGeneratorMap(generatorID AccountID, generator []byte) *GeneratorMap {
	return &GeneratorMap{
		generatorID: generatorID,
		generator:   generator,
	}
}

// GeneratorMapFromBytes unmarshals a GeneratorMap from a sequence of bytes.
func GeneratorMapFromBytes(data []byte) (generatorMap *GeneratorMap, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if generatorMap, err = GeneratorMapFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse GeneratorMap from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// GeneratorMapFromMarshalUtil unmarshals a GeneratorMap using a MarshalUtil (for easier unmarshalling).
func GeneratorMapFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (generatorMap *GeneratorMap, err error) {
	entryType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse EntryType: %w", err)
		return
	}
	if EntryType(entryType) != GeneratorMapEntry {
		err = errors.Errorf("invalid EntryType (%X) for GeneratorMap", entryType)
		return
	}

	generatorMap = &GeneratorMap{}
	if generatorMap.generatorID, err = AccountIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse generator id: %w", err)
		return
	}
	generatorLength, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse generator length (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if generatorMap.generator, err = marshalUtil.ReadBytes(int(generatorLength)); err != nil {
		err = errors.Errorf("failed to parse generator (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// GeneratorID returns the generator id the GeneratorMap belongs to.
func (g *GeneratorMap) GeneratorID() AccountID {
	return g.generatorID
}

// Generator returns the encrypted generator blob.
func (g *GeneratorMap) Generator() []byte {
	return g.generator
}

// Type returns the EntryType of the GeneratorMap.
func (g *GeneratorMap) Type() EntryType {
	return GeneratorMapEntry
}

// Index returns the EntryIndex that addresses the GeneratorMap inside the ledger.
func (g *GeneratorMap) Index() EntryIndex {
	return GeneratorMapIndex(g.generatorID)
}

// Clone creates a deep copy of the GeneratorMap.
func (g *GeneratorMap) Clone() Entry {
	clone := *g
	clone.generator = make([]byte, len(g.generator))
	copy(clone.generator, g.generator)

	return &clone
}

// Bytes returns a marshaled version of the GeneratorMap.
func (g *GeneratorMap) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(GeneratorMapEntry)).
		WriteBytes(g.generatorID.Bytes()).
		WriteUint32(uint32(len(g.generator))).
		WriteBytes(g.generator).
		Bytes()
}

// String returns a human-readable version of the GeneratorMap.
func (g *GeneratorMap) String() string {
	return stringify.Struct("GeneratorMap",
		stringify.StructField("generatorID", g.generatorID),
		stringify.StructField("generator", base58.Encode(g.generator)),
	)
}

// code contract (make sure the type implements all required methods)
var _ Entry = &GeneratorMap{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
