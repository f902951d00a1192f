package rotation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type ItemType int

type item struct {
	typ  ItemType
	pos  int
	val  string
	line int
}

const eof = -1

const (
	itemError ItemType = iota
	itemEOF

	itemTerminateLine // ;
	itemAssign        // =
	itemAddToList     // +=
	itemComma         // ,
	itemLeftParen     // (
	itemRightParen    // )

	itemField      // .hp, .enemy
	itemIdentifier // skill, defend
	itemNumber

	itemLogicOP // delimiter; logic ops below
	itemAnd
	itemOr

	itemCompareOp // delimiter; comparison ops below
	itemEqual
	itemNotEqual
	itemGreater
	itemGreaterOrEqual
	itemLess
	itemLessOrEqual

	itemKeyword // delimiter; keywords below
	itemAction
	itemIf
)

var key = map[string]ItemType{
	"actions": itemAction,
	"if":      itemIf,
}

func (i item) String() string {
	switch {
	case i.typ == itemEOF:
		return "EOF"
	case i.typ == itemError:
		return i.val
	case i.typ > itemKeyword:
		return fmt.Sprintf("<%s>", i.val)
	case len(i.val) > 10:
		return fmt.Sprintf("%.10q...", i.val)
	}
	return fmt.Sprintf("%q", i.val)
}

type stateFn func(*lexer) stateFn

//lexer turns rotation text into items. States run lazily, only as far as
//needed to produce the next item.
type lexer struct {
	name  string
	input string
	pos   int
	start int
	width int
	line  int
	items []item
	state stateFn
}

func lex(name, input string) *lexer {
	return &lexer{
		name:  name,
		input: input,
		line:  1,
		state: lexText,
	}
}

func (l *lexer) nextItem() item {
	for len(l.items) == 0 {
		if l.state == nil {
			return item{typ: itemEOF, pos: l.pos, line: l.line}
		}
		l.state = l.state(l)
	}
	i := l.items[0]
	l.items = l.items[1:]
	return i
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *lexer) backup() {
	l.pos -= l.width
	if l.width == 1 && l.input[l.pos] == '\n' {
		l.line--
	}
}

func (l *lexer) emit(t ItemType) {
	l.items = append(l.items, item{typ: t, pos: l.start, val: l.input[l.start:l.pos], line: l.line})
	l.start = l.pos
}

func (l *lexer) ignore() {
	l.start = l.pos
}

func (l *lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

func (l *lexer) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.items = append(l.items, item{typ: itemError, pos: l.start, val: fmt.Sprintf(format, args...), line: l.line})
	return nil
}

func lexText(l *lexer) stateFn {
	switch r := l.next(); {
	case r == eof:
		l.emit(itemEOF)
		return nil
	case isSpace(r):
		l.ignore()
	case r == '#':
		return lexComment
	case r == ';':
		l.emit(itemTerminateLine)
	case r == ',':
		l.emit(itemComma)
	case r == '(':
		l.emit(itemLeftParen)
	case r == ')':
		l.emit(itemRightParen)
	case r == '+':
		if l.next() != '=' {
			return l.errorf("expected += at line %v", l.line)
		}
		l.emit(itemAddToList)
	case r == '=':
		if l.accept("=") {
			l.emit(itemEqual)
		} else {
			l.emit(itemAssign)
		}
	case r == '!':
		if l.next() != '=' {
			return l.errorf("expected != at line %v", l.line)
		}
		l.emit(itemNotEqual)
	case r == '<':
		switch {
		case l.accept("="):
			l.emit(itemLessOrEqual)
		case l.accept(">"):
			l.emit(itemNotEqual)
		default:
			l.emit(itemLess)
		}
	case r == '>':
		if l.accept("=") {
			l.emit(itemGreaterOrEqual)
		} else {
			l.emit(itemGreater)
		}
	case r == '&':
		if l.next() != '&' {
			return l.errorf("expected && at line %v", l.line)
		}
		l.emit(itemAnd)
	case r == '|':
		if l.next() != '|' {
			return l.errorf("expected || at line %v", l.line)
		}
		l.emit(itemOr)
	case r == '.':
		return lexField
	case r == '-' || ('0' <= r && r <= '9'):
		l.backup()
		return lexNumber
	case isAlphaNumeric(r):
		l.backup()
		return lexIdentifier
	default:
		return l.errorf("unrecognized character %#U at line %v", r, l.line)
	}
	return lexText
}

func lexComment(l *lexer) stateFn {
	for {
		r := l.next()
		if r == '\n' || r == eof {
			break
		}
	}
	l.ignore()
	return lexText
}

//lexField emits the name after a dot without the dot itself
func lexField(l *lexer) stateFn {
	l.ignore()
	for isAlphaNumeric(l.peek()) {
		l.next()
	}
	if l.pos == l.start {
		return l.errorf("empty field at line %v", l.line)
	}
	l.emit(itemField)
	return lexText
}

func lexNumber(l *lexer) stateFn {
	l.accept("-")
	digits := "0123456789"
	if !strings.ContainsRune(digits, l.peek()) {
		return l.errorf("bad number at line %v", l.line)
	}
	l.acceptRun(digits)
	l.emit(itemNumber)
	return lexText
}

func lexIdentifier(l *lexer) stateFn {
	for isAlphaNumeric(l.peek()) {
		l.next()
	}
	word := l.input[l.start:l.pos]
	if t, ok := key[word]; ok {
		l.emit(t)
	} else {
		l.emit(itemIdentifier)
	}
	return lexText
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isAlphaNumeric(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
