package ledger

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// DirectoryNodeMaxIndexes is the maximum amount of indexes that fit into a single DirectoryNode page.
const DirectoryNodeMaxIndexes = 32

// region DirectoryRoot ////////////////////////////////////////////////////////////////////////////////////////////////

// DirectoryRoot is the root Entry of a paged directory. A directory is named by a base index and an EntryType kind
// and indexes secondary relationships (for example the credit lines of an account) as a list of EntryIndexes spread
// over bounded pages.
type DirectoryRoot struct {
	base      EntryIndex
	kind      EntryType
	firstNode uint64
	lastNode  uint64
}

// NewDirectoryRoot creates the DirectoryRoot of the directory named by the given base and kind. The directory starts
// out with a single (yet to be created) page.
func NewDirectoryRoot(base EntryIndex, kind EntryType) *DirectoryRoot {
	return &DirectoryRoot{
		base:      base,
		kind:      kind,
		firstNode: 1,
		lastNode:  1,
	}
}

// DirectoryRootFromBytes unmarshals a DirectoryRoot from a sequence of bytes.
func DirectoryRootFromBytes(data []byte) (directoryRoot *DirectoryRoot, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if directoryRoot, err = DirectoryRootFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse DirectoryRoot from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// DirectoryRootFromMarshalUtil unmarshals a DirectoryRoot using a MarshalUtil (for easier unmarshalling).
func DirectoryRootFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (directoryRoot *DirectoryRoot, err error) {
	entryType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse EntryType: %w", err)
		return
	}
	if EntryType(entryType) != DirectoryRootEntry {
		err = errors.Errorf("invalid EntryType (%X) for DirectoryRoot", entryType)
		return
	}

	directoryRoot = &DirectoryRoot{}
	if directoryRoot.base, err = EntryIndexFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse base: %w", err)
		return
	}
	kind, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse kind: %w", err)
		return
	}
	directoryRoot.kind = EntryType(kind)
	if directoryRoot.firstNode, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse first node: %w", err)
		return
	}
	if directoryRoot.lastNode, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse last node: %w", err)
		return
	}

	return
}

// Base returns the base index that names the directory.
func (d *DirectoryRoot) Base() EntryIndex {
	return d.base
}

// Kind returns the EntryType kind that names the directory.
func (d *DirectoryRoot) Kind() EntryType {
	return d.kind
}

// FirstNode returns the node number of the first page of the directory.
func (d *DirectoryRoot) FirstNode() uint64 {
	return d.firstNode
}

// SetFirstNode updates the node number of the first page of the directory.
func (d *DirectoryRoot) SetFirstNode(firstNode uint64) {
	d.firstNode = firstNode
}

// LastNode returns the node number of the last page of the directory.
func (d *DirectoryRoot) LastNode() uint64 {
	return d.lastNode
}

// SetLastNode updates the node number of the last page of the directory.
func (d *DirectoryRoot) SetLastNode(lastNode uint64) {
	d.lastNode = lastNode
}

// Type returns the EntryType of the DirectoryRoot.
func (d *DirectoryRoot) Type() EntryType {
	return DirectoryRootEntry
}

// Index returns the EntryIndex that addresses the DirectoryRoot inside the ledger.
func (d *DirectoryRoot) Index() EntryIndex {
	return DirectoryRootIndex(d.base, d.kind)
}

// Clone creates a deep copy of the DirectoryRoot.
func (d *DirectoryRoot) Clone() Entry {
	clone := *d

	return &clone
}

// Bytes returns a marshaled version of the DirectoryRoot.
func (d *DirectoryRoot) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(DirectoryRootEntry)).
		WriteBytes(d.base.Bytes()).
		WriteByte(byte(d.kind)).
		WriteUint64(d.firstNode).
		WriteUint64(d.lastNode).
		Bytes()
}

// String returns a human-readable version of the DirectoryRoot.
func (d *DirectoryRoot) String() string {
	return stringify.Struct("DirectoryRoot",
		stringify.StructField("base", d.base),
		stringify.StructField("kind", d.kind),
		stringify.StructField("firstNode", strconv.FormatUint(d.firstNode, 10)),
		stringify.StructField("lastNode", strconv.FormatUint(d.lastNode, 10)),
	)
}

// code contract (make sure the type implements all required methods)
var _ Entry = &DirectoryRoot{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region DirectoryNode ////////////////////////////////////////////////////////////////////////////////////////////////

// DirectoryNode is a single page of a paged directory. It holds up to DirectoryNodeMaxIndexes EntryIndexes; the order
// of indexes within a page is not significant.
type DirectoryNode struct {
	base    EntryIndex
	kind    EntryType
	nodeNo  uint64
	indexes []EntryIndex
}

// NewDirectoryNode creates an empty DirectoryNode page of the directory named by the given base and kind.
func NewDirectoryNode(base EntryIndex, kind EntryType, nodeNo uint64) *DirectoryNode {
	return &DirectoryNode{
		base:   base,
		kind:   kind,
		nodeNo: nodeNo,
	}
}

// DirectoryNodeFromBytes unmarshals a DirectoryNode from a sequence of bytes.
func DirectoryNodeFromBytes(data []byte) (directoryNode *DirectoryNode, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if directoryNode, err = DirectoryNodeFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse DirectoryNode from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// DirectoryNodeFromMarshalUtil unmarshals a DirectoryNode using a MarshalUtil (for easier unmarshalling).
func DirectoryNodeFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (directoryNode *DirectoryNode, err error) {
	entryType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse EntryType: %w", err)
		return
	}
	if EntryType(entryType) != DirectoryNodeEntry {
		err = errors.Errorf("invalid EntryType (%X) for DirectoryNode", entryType)
		return
	}

	directoryNode = &DirectoryNode{}
	if directoryNode.base, err = EntryIndexFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse base: %w", err)
		return
	}
	kind, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse kind: %w", err)
		return
	}
	directoryNode.kind = EntryType(kind)
	if directoryNode.nodeNo, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse node number: %w", err)
		return
	}
	indexCount, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse index count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	directoryNode.indexes = make([]EntryIndex, indexCount)
	for i := uint32(0); i < indexCount; i++ {
		if directoryNode.indexes[i], err = EntryIndexFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse index %d: %w", i, err)
			return
		}
	}

	return
}

// Base returns the base index that names the directory the page belongs to.
func (d *DirectoryNode) Base() EntryIndex {
	return d.base
}

// Kind returns the EntryType kind that names the directory the page belongs to.
func (d *DirectoryNode) Kind() EntryType {
	return d.kind
}

// NodeNo returns the node number of the page.
func (d *DirectoryNode) NodeNo() uint64 {
	return d.nodeNo
}

// Indexes returns the EntryIndexes stored in the page.
func (d *DirectoryNode) Indexes() []EntryIndex {
	return d.indexes
}

// IsEmpty returns true if the page holds no indexes.
func (d *DirectoryNode) IsEmpty() bool {
	return len(d.indexes) == 0
}

// IsFull returns true if the page holds DirectoryNodeMaxIndexes indexes.
func (d *DirectoryNode) IsFull() bool {
	return len(d.indexes) == DirectoryNodeMaxIndexes
}

// AppendIndex appends an EntryIndex to the page.
func (d *DirectoryNode) AppendIndex(entryIndex EntryIndex) {
	d.indexes = append(d.indexes, entryIndex)
}

// RemoveIndex removes one occurrence of the given EntryIndex from the page by swapping it with the last element.
// It returns false if the index is not mentioned in the page.
func (d *DirectoryNode) RemoveIndex(entryIndex EntryIndex) bool {
	for i, storedIndex := range d.indexes {
		if storedIndex == entryIndex {
			d.indexes[i] = d.indexes[len(d.indexes)-1]
			d.indexes = d.indexes[:len(d.indexes)-1]

			return true
		}
	}

	return false
}

// Type returns the EntryType of the DirectoryNode.
func (d *DirectoryNode) Type() EntryType {
	return DirectoryNodeEntry
}

// Index returns the EntryIndex that addresses the DirectoryNode inside the ledger.
func (d *DirectoryNode) Index() EntryIndex {
	return DirectoryNodeIndex(d.base, d.kind, d.nodeNo)
}

// Clone creates a deep copy of the DirectoryNode.
func (d *DirectoryNode) Clone() Entry {
	clone := *d
	clone.indexes = make([]EntryIndex, len(d.indexes))
	copy(clone.indexes, d.indexes)

	return &clone
}

// Bytes returns a marshaled version of the DirectoryNode.
func (d *DirectoryNode) Bytes() []byte {
	marshalUtil := marshalutil.New().
		WriteByte(byte(DirectoryNodeEntry)).
		WriteBytes(d.base.Bytes()).
		WriteByte(byte(d.kind)).
		WriteUint64(d.nodeNo).
		WriteUint32(uint32(len(d.indexes)))
	for _, entryIndex := range d.indexes {
		marshalUtil.WriteBytes(entryIndex.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human-readable version of the DirectoryNode.
func (d *DirectoryNode) String() string {
	indexes := stringify.StructBuilder("Indexes")
	for i, entryIndex := range d.indexes {
		indexes.AddField(stringify.StructField(strconv.Itoa(i), entryIndex))
	}

	return stringify.Struct("DirectoryNode",
		stringify.StructField("base", d.base),
		stringify.StructField("kind", d.kind),
		stringify.StructField("nodeNo", strconv.FormatUint(d.nodeNo, 10)),
		stringify.StructField("indexes", indexes),
	)
}

// code contract (make sure the type implements all required methods)
var _ Entry = &DirectoryNode{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
