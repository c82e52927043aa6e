package merkle

// Column is a chunked commitment to a sequence of row values: each chunk of
// 2^chunkLog2 leaves forms an inner tree, and the outer tree commits the
// sequence of chunk roots. This lets an opener reconstruct just the target
// chunk rather than the whole column.
type Column struct {
	label      string
	chunkLog2  uint32
	chunkSize  int
	values     [][]byte
	chunkRoots []Digest
	chunks     [][]Digest // retained so on-demand openings avoid recomputation
	outer      *Tree
}

// BuildColumn commits a column of 8-byte field-encoded row values under
// label, chunked at 2^chunkLog2 leaves per inner tree.
func BuildColumn(label string, values [][]byte, chunkLog2 uint32) *Column {
	chunkSize := 1 << chunkLog2
	leaves := make([]Digest, len(values))
	for i, v := range values {
		leaves[i] = LeafHash(label, v)
	}

	var chunks [][]Digest
	var chunkRoots []Digest
	for i := 0; i < len(leaves); i += chunkSize {
		end := i + chunkSize
		if end > len(leaves) {
			end = len(leaves)
		}
		chunk := leaves[i:end]
		chunks = append(chunks, chunk)
		chunkRoots = append(chunkRoots, RootOf(chunk))
	}

	return &Column{
		label:      label,
		chunkLog2:  chunkLog2,
		chunkSize:  chunkSize,
		values:     values,
		chunkRoots: chunkRoots,
		chunks:     chunks,
		outer:      NewTree(chunkRoots),
	}
}

// Root returns the outer commitment (the column's single public root).
func (c *Column) Root() Digest { return c.outer.Root() }

// ColumnOpening is the proof that row i of the committed column equals
// value: the inner path within its chunk, the chunk index, and the outer
// path from chunk root to the column root.
type ColumnOpening struct {
	Value      []byte
	InnerPath  []ProofNode
	ChunkIndex int
	OuterPath  []ProofNode
}

// Open reconstructs only the target chunk to produce an opening for row i.
func (c *Column) Open(i int) ColumnOpening {
	chunkIdx := i / c.chunkSize
	withinChunk := i % c.chunkSize
	chunk := c.chunks[chunkIdx]
	innerTree := NewTree(chunk)
	value := c.values[chunkIdx*c.chunkSize+withinChunk]

	return ColumnOpening{
		Value:      append([]byte(nil), value...),
		InnerPath:  innerTree.Open(withinChunk),
		ChunkIndex: chunkIdx,
		OuterPath:  c.outer.Open(chunkIdx),
	}
}

// VerifyColumnOpening checks an opening against label, a claimed row value,
// and the column's public outer root.
func VerifyColumnOpening(label string, value []byte, opening ColumnOpening, root Digest) bool {
	leaf := LeafHash(label, value)
	chunkRoot := chunkRootFromPath(leaf, opening.InnerPath)
	return VerifyPath(chunkRoot, opening.OuterPath, root)
}

func chunkRootFromPath(leaf Digest, path []ProofNode) Digest {
	cur := leaf
	for _, node := range path {
		if node.Side == Right {
			cur = NodeHash(cur, node.Sibling)
		} else {
			cur = NodeHash(node.Sibling, cur)
		}
	}
	return cur
}
