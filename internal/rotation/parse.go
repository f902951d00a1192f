package rotation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/srliao/critterduel/pkg/combat"
)

//Rule is one line of a rotation: use Action when Conditions hold
type Rule struct {
	Action     combat.ActionType
	Conditions *ExprTreeNode //nil means always

	sourceLine int
}

var actionKeys = map[string]combat.ActionType{
	"attack": combat.ActionAttack,
	"skill":  combat.ActionSkill,
	"defend": combat.ActionDefend,
}

//ExprTreeNode is either a leaf condition or a && / || join of two subtrees
type ExprTreeNode struct {
	Left   *ExprTreeNode
	Right  *ExprTreeNode
	IsLeaf bool
	Op     string
	Expr   Condition
}

type Condition struct {
	Fields []string
	Op     ItemType
	Value  int
}

func (c Condition) String() string {
	return fmt.Sprintf(".%v %v %v", strings.Join(c.Fields, "."), opString[c.Op], c.Value)
}

var opString = map[ItemType]string{
	itemEqual:          "==",
	itemNotEqual:       "!=",
	itemGreater:        ">",
	itemGreaterOrEqual: ">=",
	itemLess:           "<",
	itemLessOrEqual:    "<=",
}

//ParseError points at the script line a rule went wrong on
type ParseError struct {
	Script string
	Line   int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v:%v: %v", e.Script, e.Line, e.Msg)
}

type Parser struct {
	name string
	l    *lexer
	tok  item
	//set when tok was pushed back
	held bool
}

func New(name, input string) *Parser {
	return &Parser{name: name, l: lex(name, input)}
}

//Parse reads every rule, e.g.
//
//	actions+=defend if=.hp<30;
//	actions+=skill if=.enemy.status.burn==0&&.turn>1;
//	actions+=attack;
func (p *Parser) Parse() (Rotation, error) {
	var r Rotation
	for {
		n, err := p.next()
		if err != nil {
			return r, err
		}
		if n.typ == itemEOF {
			return r, nil
		}
		if n.typ != itemAction {
			return r, p.errorf(n, "rule must start with actions, got %v", n)
		}
		rule, err := p.rule(n.line)
		if err != nil {
			return r, err
		}
		r = append(r, rule)
	}
}

//rule reads what follows the actions keyword: +=<type> [if=<expr>] ;
func (p *Parser) rule(line int) (Rule, error) {
	rule := Rule{sourceLine: line}
	if _, err := p.expect(itemAddToList, "+="); err != nil {
		return rule, err
	}
	n, err := p.expect(itemIdentifier, "an action type")
	if err != nil {
		return rule, err
	}
	t, ok := actionKeys[n.val]
	if !ok {
		return rule, p.errorf(n, "unknown action type %q", n.val)
	}
	rule.Action = t

	for {
		n, err := p.next()
		if err != nil {
			return rule, err
		}
		switch n.typ {
		case itemTerminateLine:
			return rule, nil
		case itemIf:
			if rule.Conditions != nil {
				return rule, p.errorf(n, "rule already has a condition")
			}
			if _, err := p.expect(itemAssign, "="); err != nil {
				return rule, err
			}
			if rule.Conditions, err = p.or(); err != nil {
				return rule, err
			}
		case itemEOF:
			return rule, &ParseError{Script: p.name, Line: line, Msg: "rule is missing a terminating ;"}
		default:
			return rule, p.errorf(n, "expected if or ;, got %v", n)
		}
	}
}

//or and and build a left leaning tree where && binds tighter than ||
func (p *Parser) or() (*ExprTreeNode, error) {
	return p.join(itemOr, p.and)
}

func (p *Parser) and() (*ExprTreeNode, error) {
	return p.join(itemAnd, p.term)
}

func (p *Parser) join(op ItemType, operand func() (*ExprTreeNode, error)) (*ExprTreeNode, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		n, err := p.next()
		if err != nil {
			return nil, err
		}
		if n.typ != op {
			p.backup()
			return left, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ExprTreeNode{Op: n.val, Left: left, Right: right}
	}
}

func (p *Parser) term() (*ExprTreeNode, error) {
	n, err := p.next()
	if err != nil {
		return nil, err
	}
	switch n.typ {
	case itemLeftParen:
		x, err := p.or()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(itemRightParen, ")"); err != nil {
			return nil, err
		}
		return x, nil
	case itemField:
		p.backup()
		c, err := p.condition()
		if err != nil {
			return nil, err
		}
		return &ExprTreeNode{IsLeaf: true, Expr: c}, nil
	}
	return nil, p.errorf(n, "expected a field or (, got %v", n)
}

//condition reads .field[.field...] <op> <int>
func (p *Parser) condition() (Condition, error) {
	var c Condition
	n, err := p.next()
	for err == nil && n.typ == itemField {
		c.Fields = append(c.Fields, n.val)
		n, err = p.next()
	}
	if err != nil {
		return c, err
	}
	if ferr := checkFields(c.Fields); ferr != nil {
		return c, p.errorf(n, "%v", ferr)
	}

	if n.typ <= itemCompareOp || n.typ >= itemKeyword {
		return c, p.errorf(n, "expected a comparison after %v, got %v", strings.Join(c.Fields, "."), n)
	}
	c.Op = n.typ

	n, err = p.expect(itemNumber, "a number")
	if err != nil {
		return c, err
	}
	v, err := strconv.Atoi(n.val)
	if err != nil {
		return c, p.errorf(n, "bad number %v", n.val)
	}
	c.Value = v
	return c, nil
}

func (p *Parser) expect(t ItemType, what string) (item, error) {
	n, err := p.next()
	if err != nil {
		return n, err
	}
	if n.typ != t {
		return n, p.errorf(n, "expected %v, got %v", what, n)
	}
	return n, nil
}

//next returns the following token; lexer failures come back as errors
func (p *Parser) next() (item, error) {
	if p.held {
		p.held = false
	} else {
		p.tok = p.l.nextItem()
	}
	if p.tok.typ == itemError {
		return p.tok, p.errorf(p.tok, "%v", p.tok.val)
	}
	return p.tok, nil
}

//backup pushes back the last token; only one token of lookahead is kept
func (p *Parser) backup() {
	p.held = true
}

func (p *Parser) errorf(n item, format string, args ...interface{}) error {
	return &ParseError{Script: p.name, Line: n.line, Msg: fmt.Sprintf(format, args...)}
}
