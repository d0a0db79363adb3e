package ir

// Block is a linear sequence of statements scheduled as one unit.
type Block struct {
	Name       string
	Statements []*Statement

	// CyclesValid is set once every statement carries a scheduled cycle.
	CyclesValid bool
	// Span is the number of cycles between the start of the block and the
	// completion of its last statement.
	Span int
}

// NewBlock returns an empty block with the given name.
func NewBlock(name string) *Block {
	return &Block{Name: name}
}

// Add appends a statement and returns the block for chaining.
func (b *Block) Add(stmts ...*Statement) *Block {
	b.Statements = append(b.Statements, stmts...)
	b.CyclesValid = false
	return b
}

// Walk visits b and every nested block, depth first, parents before children.
func (b *Block) Walk(fn func(*Block)) {
	fn(b)
	for _, s := range b.Statements {
		if s.Structure == nil {
			continue
		}
		for _, sub := range s.Structure.SubBlocks() {
			sub.Walk(fn)
		}
	}
}

// Program is a named collection of kernels compiled for one platform.
type Program struct {
	Name    string
	Kernels []*Block
}

// Blocks returns every block in the program, kernels first in declaration
// order, each followed by its nested blocks.
func (p *Program) Blocks() []*Block {
	var blocks []*Block
	for _, k := range p.Kernels {
		k.Walk(func(b *Block) {
			blocks = append(blocks, b)
		})
	}
	return blocks
}
