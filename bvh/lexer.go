package bvh

import (
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	tokenWord = iota
	tokenOpenBrace
	tokenCloseBrace
	tokenNewline
)

var lexer *lexmachine.Lexer

func init() {
	lexer = lexmachine.NewLexer()
	lexer.Add([]byte("[{]"), getToken(tokenOpenBrace))
	lexer.Add([]byte("[}]"), getToken(tokenCloseBrace))
	lexer.Add([]byte("(\r\n|\n|\r)"), getToken(tokenNewline))
	lexer.Add([]byte("( |\t)+"), skip)
	lexer.Add([]byte("[^ \t\r\n{}]+"), getToken(tokenWord))
	if err := lexer.Compile(); err != nil {
		panic(err)
	}
}

func getToken(tokenType int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(tokenType, string(m.Bytes), m), nil
	}
}

func skip(scan *lexmachine.Scanner, match *machines.Match) (interface{}, error) {
	return nil, nil
}
