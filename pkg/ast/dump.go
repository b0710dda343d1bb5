package ast

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DumpYAML writes a readable tree of stmts. Mappings keep field order so the
// output is stable across runs.
func DumpYAML(w io.Writer, stmts Statements) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(statementsNode(stmts)); err != nil {
		return fmt.Errorf("ast: encode yaml: %w", err)
	}
	return enc.Close()
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func quoted(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value, Style: yaml.DoubleQuotedStyle}
}

func mapping(pairs ...any) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for idx := 0; idx+1 < len(pairs); idx += 2 {
		key := pairs[idx].(string)
		var val *yaml.Node
		switch v := pairs[idx+1].(type) {
		case *yaml.Node:
			val = v
		case string:
			val = scalar(v)
		case int:
			val = scalar(strconv.Itoa(v))
		default:
			val = scalar(fmt.Sprint(v))
		}
		node.Content = append(node.Content, scalar(key), val)
	}
	return node
}

func sequence(items []*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

func statementsNode(stmts Statements) *yaml.Node {
	items := make([]*yaml.Node, 0, len(stmts))
	for _, stmt := range stmts {
		items = append(items, statementNode(stmt))
	}
	return sequence(items)
}

func statementNode(stmt Statement) *yaml.Node {
	switch s := stmt.(type) {
	case *Assignment:
		return mapping("assignment", mapping(
			"pos", s.Pos.String(),
			"target", valueNode(s.Target),
			"value", valueNode(s.Val),
		))
	case *ValueStatement:
		return mapping("value", valueNode(s.Val))
	case *Include:
		return mapping("include", mapping("pos", s.Pos.String(), "path", quoted(s.Path)))
	default:
		return scalar(fmt.Sprintf("%T", stmt))
	}
}

func valueNode(val Value) *yaml.Node {
	switch v := val.(type) {
	case *Lit:
		return mapping("lit", literalNode(v.Val))
	case *Var:
		return mapping("var", mapping("name", v.Name, "pos", v.Pos.String()))
	case *Member:
		return mapping("member", mapping(
			"pos", v.Pos.String(),
			"target", valueNode(v.Target),
			"field", v.Field.Name,
		))
	case *FunCall:
		args := make([]*yaml.Node, 0, len(v.Args))
		for _, arg := range v.Args {
			args = append(args, valueNode(arg))
		}
		return mapping("call", mapping(
			"pos", v.Pos.String(),
			"callee", valueNode(v.Callee),
			"args", sequence(args),
		))
	default:
		return scalar(fmt.Sprintf("%T", val))
	}
}

func literalNode(lit Literal) *yaml.Node {
	switch v := lit.(type) {
	case Str:
		return mapping("str", quoted(string(v)))
	case Char:
		return mapping("char", quoted(string(rune(v))))
	case Num:
		return mapping("num", FormatNum(float64(v)))
	case Fun:
		if fn, ok := v.Callable.(*Function); ok {
			params := make([]*yaml.Node, 0, len(fn.Args))
			for _, arg := range fn.Args {
				params = append(params, scalar(arg))
			}
			return mapping("fun", mapping(
				"pos", fn.Pos.String(),
				"params", sequence(params),
				"body", statementsNode(fn.Body),
			))
		}
		return scalar(Inspect(lit))
	default:
		return scalar(Inspect(lit))
	}
}
