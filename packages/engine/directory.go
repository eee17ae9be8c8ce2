package engine

import (
	"github.com/valueledger/rivulet/packages/ledger"
)

// region directory add ////////////////////////////////////////////////////////////////////////////////////////////////

// dirAdd appends entryIndex to the directory named by base and kind, allocating root and pages as needed. It returns
// the node number of the page that now contains entryIndex, so that the key can later be removed without a scan.
func (e *Engine) dirAdd(affected *AffectedEntries, base ledger.EntryIndex, kind ledger.EntryType, entryIndex ledger.EntryIndex) (nodeNo uint64, result Result) {
	rootIndex := ledger.DirectoryRootIndex(base, kind)
	root := e.directoryRoot(rootIndex)
	rootNew := root == nil

	if !rootNew {
		nodeNo = root.LastNode()
	} else {
		nodeNo = 1
		root = ledger.NewDirectoryRoot(base, kind)

		e.debugf("dirAdd: creating directory root: %s", root.Index())

		affected.Stage(OpCreate, root)
	}

	// The last page cannot exist yet when the root was just created.
	var node *ledger.DirectoryNode
	if !rootNew {
		node = e.directoryNode(ledger.DirectoryNodeIndex(base, kind, nodeNo))
	}

	if node != nil {
		if !node.IsFull() {
			// Last page is not full, append.
			node.AppendIndex(entryIndex)
			affected.Stage(OpModify, node)

			return nodeNo, ResultSuccess
		}

		// Last page is full, open a new one.
		nodeNo++
		if nodeNo == 0 {
			return 0, ResultDirectoryFull
		}

		e.debugf("dirAdd: new last page: %d", nodeNo)

		node = nil
		root.SetLastNode(nodeNo)
		affected.Stage(OpModify, root)
	}

	node = ledger.NewDirectoryNode(base, kind, nodeNo)
	node.AppendIndex(entryIndex)

	e.debugf("dirAdd: creating directory page: %s", node.Index())

	affected.Stage(OpCreate, node)

	return nodeNo, ResultSuccess
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region directory delete /////////////////////////////////////////////////////////////////////////////////////////////

// dirDelete removes a known occurrence of entryIndex from the page nodeNo of the directory named by base and kind.
// Pages that become empty at the directory boundaries are reclaimed and the boundaries shrink until they hit a
// non-empty page; interior pages are never reclaimed, since finding them again would require a scan.
func (e *Engine) dirDelete(affected *AffectedEntries, nodeNo uint64, base ledger.EntryIndex, kind ledger.EntryType, entryIndex ledger.EntryIndex) (result Result) {
	nodeCur := nodeNo
	node := e.directoryNode(ledger.DirectoryNodeIndex(base, kind, nodeCur))
	if node == nil {
		e.debugf("dirDelete: no such page")
		return ResultNodeNotFound
	}

	if !node.RemoveIndex(entryIndex) {
		e.debugf("dirDelete: page does not mention the key")
		return ResultNodeNotMentioned
	}

	root := e.directoryRoot(ledger.DirectoryRootIndex(base, kind))
	if root == nil {
		e.debugf("dirDelete: directory root is missing")
		return ResultNodeNoRoot
	}

	firstNodeOrig := root.FirstNode()
	lastNodeOrig := root.LastNode()
	firstNode := firstNodeOrig
	lastNode := lastNodeOrig

	if !node.IsEmpty() || (firstNode != nodeCur && lastNode != nodeCur) {
		// The page survives (still has keys, or sits in the interior of the directory).
		affected.Stage(OpModify, node)
	}

	for firstNode != 0 && node.IsEmpty() && (firstNode == nodeCur || lastNode == nodeCur) {
		// Current page is empty and sits at a boundary, reclaim it.
		affected.Stage(OpDelete, node)

		if firstNode == lastNode {
			// The directory is empty.
			firstNode = 0
		} else {
			if firstNode == nodeCur {
				nodeCur++
				firstNode++
			} else {
				nodeCur--
				lastNode--
			}

			node = e.directoryNode(ledger.DirectoryNodeIndex(base, kind, nodeCur))
			if node == nil {
				// Hole at the new boundary; the shrunken range is still recorded below.
				break
			}
		}
	}

	if firstNode == firstNodeOrig && lastNode == lastNodeOrig {
		// Directory bounds unchanged.
	} else if firstNode != 0 {
		root.SetFirstNode(firstNode)
		root.SetLastNode(lastNode)

		affected.Stage(OpModify, root)
	} else {
		affected.Stage(OpDelete, root)
	}

	return ResultSuccess
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region directory traversal //////////////////////////////////////////////////////////////////////////////////////////

// DirectoryContents walks the pages of the directory named by base and kind in node order and returns every stored
// key. Missing pages inside the range are tolerated and skipped.
func DirectoryContents(store LedgerStore, base ledger.EntryIndex, kind ledger.EntryType) (indexes []ledger.EntryIndex, err error) {
	root, err := store.DirectoryRoot(ledger.DirectoryRootIndex(base, kind))
	if root == nil || err != nil {
		return
	}

	for nodeNo := root.FirstNode(); nodeNo <= root.LastNode(); nodeNo++ {
		node, nodeErr := store.DirectoryNode(ledger.DirectoryNodeIndex(base, kind, nodeNo))
		if nodeErr != nil {
			err = nodeErr
			return
		}
		if node == nil {
			continue
		}

		indexes = append(indexes, node.Indexes()...)
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
