package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/qcsched/internal/bggohcl"
	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/platform"
	"github.com/zclconf/go-cty/cty"
)

func findPlatform(blocks hcl.Blocks) (*hcl.Block, hcl.Diagnostics) {
	return bggohcl.SingleBlock(blocks, "platform", "A configuration describes exactly one platform.")
}

// decodePlatform translates a platform block into the platform model.
func (l *Loader) decodePlatform(block *hcl.Block) (*platform.Platform, hcl.Diagnostics) {
	var body platformBody
	diags := gohcl.DecodeBody(block.Body, nil, &body)
	if diags.HasErrors() {
		return nil, diags
	}

	p := platform.New(block.Labels[0])
	p.Architecture = body.Architecture
	p.QubitCount = body.Qubits
	if body.CycleTime != nil {
		p.CycleTimeNs = *body.CycleTime
	}

	for _, in := range body.Instructions {
		def := &platform.Instruction{Name: in.Name, DurationNs: in.Duration, Barrier: in.Barrier}
		for _, m := range in.OperandModes {
			mode, err := ir.ParseAccessMode(m)
			if err != nil {
				diags = append(diags, errorDiag(block.DefRange, "Invalid operand mode",
					fmt.Sprintf("instruction %q: %s", in.Name, err)))
				continue
			}
			def.OperandModes = append(def.OperandModes, mode)
		}
		if _, dup := p.Instructions[in.Name]; dup {
			diags = append(diags, errorDiag(block.DefRange, "Duplicate instruction",
				fmt.Sprintf("instruction %q is defined twice", in.Name)))
		}
		p.AddInstruction(def)
	}

	if body.Resources != nil {
		val, d := body.Resources.Value(nil)
		diags = append(diags, d...)
		native, err := bggohcl.ToNative(val)
		if err != nil {
			diags = append(diags, errorDiag(body.Resources.Range(), "Invalid resources", err.Error()))
		}
		switch r := native.(type) {
		case nil:
		case map[string]any:
			p.Resources = r
		default:
			diags = append(diags, errorDiag(body.Resources.Range(), "Invalid resources",
				fmt.Sprintf("resources must be an object, got %T", native)))
		}
	}

	if err := p.Validate(); err != nil {
		diags = append(diags, errorDiag(block.DefRange, "Invalid platform", err.Error()))
	}
	return p, diags
}

func (l *Loader) decodeKernel(block *hcl.Block) (*ir.Block, hcl.Diagnostics) {
	content, diags := block.Body.Content(&hcl.BodySchema{Blocks: statementBlocks})
	if diags.HasErrors() {
		return nil, diags
	}
	k, d := l.decodeStatements(block.Labels[0], content.Blocks)
	return k, append(diags, d...)
}

// decodeStatements translates the statement blocks of one body, in source
// order, into a block with the given name. Blocks of other types are left
// for the caller.
func (l *Loader) decodeStatements(name string, blocks hcl.Blocks) (*ir.Block, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	out := ir.NewBlock(name)
	for _, b := range blocks {
		idx := len(out.Statements)
		var (
			s *ir.Statement
			d hcl.Diagnostics
		)
		switch b.Type {
		case "gate":
			s, d = l.decodeGate(b)
		case "barrier":
			s, d = l.decodeBarrier(b)
		case "wait":
			s, d = l.decodeWait(b)
		case "if":
			s, d = l.decodeIf(fmt.Sprintf("%s.if%d", name, idx), b)
		case "loop":
			s, d = l.decodeLoop(fmt.Sprintf("%s.loop%d", name, idx), b)
		default:
			continue
		}
		diags = append(diags, d...)
		if s != nil {
			out.Add(s)
		}
	}
	return out, diags
}

func (l *Loader) decodeGate(b *hcl.Block) (*ir.Statement, hcl.Diagnostics) {
	var body gateBody
	if diags := gohcl.DecodeBody(b.Body, nil, &body); diags.HasErrors() {
		return nil, diags
	}
	s := &ir.Statement{Name: b.Labels[0]}
	for _, q := range body.Qubits {
		s.Operands = append(s.Operands, ir.Q(q))
	}
	for _, c := range body.Cregs {
		s.Operands = append(s.Operands, ir.C(c))
	}
	for _, c := range body.ReadCregs {
		s.Operands = append(s.Operands, ir.C(c).With(ir.Read))
	}
	for _, bit := range body.Bregs {
		s.Operands = append(s.Operands, ir.B(bit))
	}
	if len(body.Condition) > 0 {
		s.Condition = &ir.Condition{Bregs: body.Condition, Negate: body.Negate}
	}
	return s, nil
}

func (l *Loader) decodeBarrier(b *hcl.Block) (*ir.Statement, hcl.Diagnostics) {
	var body barrierBody
	if diags := gohcl.DecodeBody(b.Body, nil, &body); diags.HasErrors() {
		return nil, diags
	}
	return ir.NewBarrier(operands(body.Qubits, body.Cregs)...), nil
}

func (l *Loader) decodeWait(b *hcl.Block) (*ir.Statement, hcl.Diagnostics) {
	var body waitBody
	if diags := gohcl.DecodeBody(b.Body, nil, &body); diags.HasErrors() {
		return nil, diags
	}
	if body.Cycles < 0 {
		return nil, hcl.Diagnostics{errorDiag(b.DefRange, "Invalid wait", "cycles must not be negative")}
	}
	return ir.NewWait(body.Cycles, operands(body.Qubits, nil)...), nil
}

// decodeIf reads an if block. Its own statements form the first branch;
// nested elif blocks add branches and an else block the fallback.
func (l *Loader) decodeIf(name string, b *hcl.Block) (*ir.Statement, hcl.Diagnostics) {
	schema := &hcl.BodySchema{
		Attributes: conditionAttributes,
		Blocks:     append(append([]hcl.BlockHeaderSchema{}, statementBlocks...), hcl.BlockHeaderSchema{Type: "elif"}, hcl.BlockHeaderSchema{Type: "else"}),
	}
	content, diags := b.Body.Content(schema)
	if diags.HasErrors() {
		return nil, diags
	}

	ifelse := &ir.IfElse{}
	first, d := l.decodeBranch(name+".then", content, b.DefRange)
	diags = append(diags, d...)
	ifelse.Branches = append(ifelse.Branches, first)

	for _, sub := range content.Blocks {
		switch sub.Type {
		case "elif":
			c, d := sub.Body.Content(&hcl.BodySchema{Attributes: conditionAttributes, Blocks: statementBlocks})
			diags = append(diags, d...)
			if d.HasErrors() {
				continue
			}
			br, d := l.decodeBranch(fmt.Sprintf("%s.elif%d", name, len(ifelse.Branches)), c, sub.DefRange)
			diags = append(diags, d...)
			ifelse.Branches = append(ifelse.Branches, br)
		case "else":
			if ifelse.Else != nil {
				diags = append(diags, errorDiag(sub.DefRange, "Duplicate \"else\" block", "Only one \"else\" block is allowed."))
				continue
			}
			c, d := sub.Body.Content(&hcl.BodySchema{Blocks: statementBlocks})
			diags = append(diags, d...)
			if d.HasErrors() {
				continue
			}
			body, d := l.decodeStatements(name+".else", c.Blocks)
			diags = append(diags, d...)
			ifelse.Else = body
		}
	}
	return &ir.Statement{Name: "if", Structure: ifelse}, diags
}

func (l *Loader) decodeBranch(name string, content *hcl.BodyContent, rng hcl.Range) (ir.Branch, hcl.Diagnostics) {
	cond, diags := decodeCondition(content.Attributes)
	if cond == nil && !diags.HasErrors() {
		diags = append(diags, errorDiag(rng, "Missing condition", "A conditional branch needs a non-empty \"condition\"."))
	}
	body, d := l.decodeStatements(name, content.Blocks)
	return ir.Branch{Condition: cond, Body: body}, append(diags, d...)
}

func (l *Loader) decodeLoop(name string, b *hcl.Block) (*ir.Statement, hcl.Diagnostics) {
	schema := &hcl.BodySchema{
		Attributes: append([]hcl.AttributeSchema{{Name: "count"}}, conditionAttributes...),
		Blocks:     statementBlocks,
	}
	content, diags := b.Body.Content(schema)
	if diags.HasErrors() {
		return nil, diags
	}

	loop := &ir.Loop{}
	diags = append(diags, bggohcl.DecodeAttribute(content.Attributes, "count", cty.Number, &loop.Count)...)
	cond, d := decodeCondition(content.Attributes)
	diags = append(diags, d...)
	loop.Condition = cond
	if (loop.Count > 0) == (cond != nil) {
		diags = append(diags, errorDiag(b.DefRange, "Invalid loop", "A loop needs exactly one of a positive \"count\" or a \"condition\"."))
	}

	body, d := l.decodeStatements(name+".body", content.Blocks)
	loop.Body = body
	return &ir.Statement{Name: "loop", Structure: loop}, append(diags, d...)
}

func decodeCondition(attrs hcl.Attributes) (*ir.Condition, hcl.Diagnostics) {
	var (
		bregs  []int
		negate bool
	)
	diags := bggohcl.DecodeAttribute(attrs, "condition", cty.List(cty.Number), &bregs)
	diags = append(diags, bggohcl.DecodeAttribute(attrs, "negate", cty.Bool, &negate)...)
	if len(bregs) == 0 {
		return nil, diags
	}
	return &ir.Condition{Bregs: bregs, Negate: negate}, diags
}

func operands(qubits, cregs []int) []ir.Operand {
	var ops []ir.Operand
	for _, q := range qubits {
		ops = append(ops, ir.Q(q))
	}
	for _, c := range cregs {
		ops = append(ops, ir.C(c))
	}
	return ops
}

func errorDiag(rng hcl.Range, summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  rng.Ptr(),
	}
}
