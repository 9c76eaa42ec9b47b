package bvh

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
)

type parser struct {
	file *File

	// stack[0] is the document node, the top is the node whose block is open.
	stack []*Node
	// last is the most recent node at the current depth, the owner of the next "{".
	last *Node

	inMotion     bool
	sawFrameTime bool
}

// Parse reads a BVH document.
func Parse(text []byte) (*File, error) {
	scanner, err := lexer.Scanner(text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bvh scanner")
	}

	doc := &Node{}
	p := &parser{file: &File{Root: doc}, stack: []*Node{doc}}

	var words []string
	lineNo := 1
	for itok, err, eos := scanner.Next(); !eos; itok, err, eos = scanner.Next() {
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read token near line %d", lineNo)
		}
		tok := itok.(*lexmachine.Token)

		switch tok.Type {
		case tokenWord:
			if len(words) == 0 {
				lineNo = tok.StartLine
			}
			words = append(words, tok.Value.(string))
		case tokenNewline:
			if err := p.line(words, lineNo); err != nil {
				return nil, err
			}
			words = nil
		case tokenOpenBrace:
			if err := p.line(words, lineNo); err != nil {
				return nil, err
			}
			words = nil
			if err := p.open(tok.StartLine); err != nil {
				return nil, err
			}
		case tokenCloseBrace:
			if err := p.line(words, lineNo); err != nil {
				return nil, err
			}
			words = nil
			if err := p.close(tok.StartLine); err != nil {
				return nil, err
			}
		}
	}
	if err := p.line(words, lineNo); err != nil {
		return nil, err
	}

	if len(p.stack) != 1 {
		top := p.stack[len(p.stack)-1]
		return nil, errors.Errorf("block of %s %s opened on line %d is never closed", top.Tag, top.Name(), top.Line)
	}
	if len(p.file.Frames) > 0 && !p.sawFrameTime {
		return nil, errors.New(`MOTION section has frames but no "Frame Time:" header`)
	}
	return p.file, nil
}

func (p *parser) open(lineNo int) error {
	if p.inMotion {
		return errors.Errorf("unexpected '{' in MOTION section on line %d", lineNo)
	}
	if p.last == nil {
		return errors.Errorf("'{' on line %d does not follow a hierarchy line", lineNo)
	}
	p.stack = append(p.stack, p.last)
	p.last = nil
	return nil
}

func (p *parser) close(lineNo int) error {
	if p.inMotion {
		return errors.Errorf("unexpected '}' in MOTION section on line %d", lineNo)
	}
	if len(p.stack) == 1 {
		return errors.Errorf("unbalanced '}' on line %d", lineNo)
	}
	p.last = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

func (p *parser) line(words []string, lineNo int) error {
	if len(words) == 0 {
		return nil
	}
	if p.inMotion {
		return p.motionLine(words, lineNo)
	}
	if words[0] == TagMotion {
		if len(p.stack) != 1 {
			return errors.Errorf("MOTION on line %d appears inside an open block", lineNo)
		}
		p.inMotion = true
		return nil
	}

	node := &Node{Tag: words[0], Values: append([]string(nil), words[1:]...), Line: lineNo}
	parent := p.stack[len(p.stack)-1]
	parent.Children = append(parent.Children, node)
	p.last = node
	return nil
}

func (p *parser) motionLine(words []string, lineNo int) error {
	switch {
	case words[0] == "Frames:":
		if len(words) != 2 {
			return errors.Errorf(`malformed "Frames:" header on line %d`, lineNo)
		}
		n, err := strconv.Atoi(words[1])
		if err != nil {
			return errors.Wrapf(err, `bad "Frames:" count on line %d`, lineNo)
		}
		p.file.DeclaredFrames = n
	case words[0] == "Frame" && len(words) > 1 && strings.HasPrefix(words[1], "Time:"):
		// "Frame Time: 0.03" and the occasional "Frame Time:0.03".
		value := strings.TrimPrefix(words[1], "Time:")
		if value == "" {
			if len(words) != 3 {
				return errors.Errorf(`malformed "Frame Time:" header on line %d`, lineNo)
			}
			value = words[2]
		}
		frameTime, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return errors.Wrapf(err, `bad "Frame Time:" value on line %d`, lineNo)
		}
		p.file.FrameTime = frameTime
		p.sawFrameTime = true
	default:
		p.file.Frames = append(p.file.Frames, append([]string(nil), words...))
	}
	return nil
}
