package dotparser

// ParseID consumes exactly one identifier token.
func ParseID(c Cursor) (ID, Cursor, error) {
	return parseID(c, "")
}

func parseID(c Cursor, construct string) (ID, Cursor, error) {
	tok, next, err := c.Expect(TokenIdentifier, construct)
	if err != nil {
		return ID{}, c, err
	}
	return ID{Text: tok.Literal, Quote: tok.Quote, Pos: tok.Pos}, next, nil
}

// ParseAssignment consumes `key = value`.
func ParseAssignment(c Cursor) (Assignment, Cursor, error) {
	pos := c.Pos()
	key, c, err := parseID(c, "assignment")
	if err != nil {
		return Assignment{}, c, err
	}
	if _, c, err = c.Expect(TokenEquals, "assignment"); err != nil {
		return Assignment{}, c, err
	}
	value, c, err := parseID(c, "assignment")
	if err != nil {
		return Assignment{}, c, err
	}
	return Assignment{Key: key, Value: value, Pos: pos}, c, nil
}

// ParseAttributeList consumes one or more bracket groups `[a=1, b=2][c=3]`.
// It fails if the cursor is not at '['.
func ParseAttributeList(c Cursor) (AttributeList, Cursor, error) {
	if !c.Is(TokenLBracket) {
		return nil, c, unexpected(c.Peek(), TokenLBracket.String(), "attribute list")
	}

	var list AttributeList
	for c.Is(TokenLBracket) {
		group, next, err := parseAttributeGroup(c)
		if err != nil {
			return nil, c, err
		}
		list = append(list, group)
		c = next
	}
	return list, c, nil
}

func parseAttributeGroup(c Cursor) (AttributeGroup, Cursor, error) {
	_, c, err := c.Expect(TokenLBracket, "attribute list")
	if err != nil {
		return nil, c, err
	}

	group := AttributeGroup{}
	for !c.Is(TokenRBracket) {
		if !c.Is(TokenIdentifier) {
			return nil, c, unexpected(c.Peek(), "attribute assignment or ']'", "attribute list")
		}
		asg, next, err := ParseAssignment(c)
		if err != nil {
			return nil, c, err
		}
		group = append(group, asg)
		c = next

		// Separators are optional; a trailing one before ']' is fine.
		if c.Is(TokenComma) || c.Is(TokenSemicolon) {
			_, c = c.Next()
		}
	}

	_, c, err = c.Expect(TokenRBracket, "attribute list")
	if err != nil {
		return nil, c, err
	}
	return group, c, nil
}

// ParseNode consumes a node ID followed by an optional attribute list.
func ParseNode(c Cursor) (*Node, Cursor, error) {
	pos := c.Pos()
	id, c, err := parseID(c, "node statement")
	if err != nil {
		return nil, c, err
	}
	attrs, _, c := Optional[AttributeList](ParseAttributeList, c, "node attribute list")
	return &Node{ID: id, Attributes: attrs, Pos: pos}, c, nil
}

// ParseEdge consumes an edge chain `A -> B -> {C D} [attrs]` using the edge
// operator of K.
func ParseEdge[K Kind](c Cursor) (*Edge[K], Cursor, error) {
	first, c, err := parseEndpoint[K](c)
	if err != nil {
		return nil, c, err
	}
	return parseEdgeFrom(first, c)
}

// parseEdgeFrom continues an edge chain whose first endpoint has already been
// consumed.
func parseEdgeFrom[K Kind](first Endpoint[K], c Cursor) (*Edge[K], Cursor, error) {
	op := edgeOpOf[K]()
	if !c.Is(op) {
		return nil, c, wrongOperator[K](c.Peek())
	}

	endpoints := []Endpoint[K]{first}
	for c.Is(op) {
		_, c = c.Next()
		ep, next, err := parseEndpoint[K](c)
		if err != nil {
			return nil, c, err
		}
		endpoints = append(endpoints, ep)
		c = next
	}
	if c.Is(otherEdgeOp(op)) {
		return nil, c, wrongOperator[K](c.Peek())
	}

	attrs, _, c := Optional[AttributeList](ParseAttributeList, c, "edge attribute list")
	return &Edge[K]{Endpoints: endpoints, Attributes: attrs, Pos: first.Pos()}, c, nil
}

func parseEndpoint[K Kind](c Cursor) (Endpoint[K], Cursor, error) {
	switch c.Peek().Kind {
	case TokenSubgraph, TokenLBrace:
		sub, next, err := ParseSubgraph[K](c)
		if err != nil {
			return Endpoint[K]{}, c, err
		}
		return Endpoint[K]{Subgraph: sub}, next, nil
	case TokenIdentifier:
		id, next, err := parseID(c, "edge")
		if err != nil {
			return Endpoint[K]{}, c, err
		}
		return Endpoint[K]{NodeID: &id}, next, nil
	default:
		return Endpoint[K]{}, c, unexpected(c.Peek(), "node identifier or subgraph", "edge")
	}
}

func otherEdgeOp(op TokenKind) TokenKind {
	if op == TokenArrow {
		return TokenDash
	}
	return TokenArrow
}

func wrongOperator[K Kind](tok Token) error {
	op := edgeOpOf[K]()
	err := unexpected(tok, op.String(), "edge")
	if tok.Kind == otherEdgeOp(op) {
		msg := "'->' is not allowed in an undirected graph"
		if op == TokenArrow {
			msg = "'--' is not allowed in a directed graph"
		}
		switch e := err.(type) {
		case *SyntaxError:
			e.Message = msg
		case *PrematureEndError:
			e.Message = msg
		}
	}
	return err
}

// ParseSubgraph consumes `subgraph [ID] { stmts }` or an anonymous `{ stmts }`.
func ParseSubgraph[K Kind](c Cursor) (*Subgraph[K], Cursor, error) {
	sub := &Subgraph[K]{Pos: c.Pos()}
	if c.Is(TokenSubgraph) {
		_, c = c.Next()
		sub.Keyword = true
		if c.Is(TokenIdentifier) {
			id, next, err := parseID(c, "subgraph")
			if err != nil {
				return nil, c, err
			}
			sub.ID = &id
			c = next
		}
	}

	_, c, err := c.Expect(TokenLBrace, "subgraph")
	if err != nil {
		return nil, c, err
	}
	stmts, c, err := parseStatements[K](c, "subgraph")
	if err != nil {
		return nil, c, err
	}
	sub.Statements = stmts
	return sub, c, nil
}

// parseStatements consumes statements up to and including the closing '}'.
func parseStatements[K Kind](c Cursor, construct string) ([]Statement[K], Cursor, error) {
	var stmts []Statement[K]
	for {
		for c.Is(TokenSemicolon) {
			_, c = c.Next()
		}
		if c.Is(TokenRBrace) {
			_, c = c.Next()
			return stmts, c, nil
		}
		if c.AtEnd() {
			return nil, c, unexpected(c.Peek(), "'}'", construct)
		}
		st, next, err := ParseStatement[K](c)
		if err != nil {
			return nil, c, err
		}
		stmts = append(stmts, st)
		c = next
	}
}

// ParseStatement consumes one statement. Alternatives are chosen in order of
// preference: an edge when an edge operator follows the first endpoint, a
// subgraph, an assignment when '=' follows the first identifier, a node, and
// finally an attribute statement.
func ParseStatement[K Kind](c Cursor) (Statement[K], Cursor, error) {
	tok := c.Peek()
	switch tok.Kind {
	case TokenSubgraph, TokenLBrace:
		sub, next, err := ParseSubgraph[K](c)
		if err != nil {
			return Statement[K]{}, c, err
		}
		if isEdgeOp(next.Peek().Kind) {
			edge, next, err := parseEdgeFrom(Endpoint[K]{Subgraph: sub}, next)
			if err != nil {
				return Statement[K]{}, c, err
			}
			return Statement[K]{Kind: StmtEdge, Edge: edge}, next, nil
		}
		return Statement[K]{Kind: StmtSubgraph, Subgraph: sub}, next, nil

	case TokenIdentifier:
		switch c.PeekAt(1).Kind {
		case TokenArrow, TokenDash:
			edge, next, err := ParseEdge[K](c)
			if err != nil {
				return Statement[K]{}, c, err
			}
			return Statement[K]{Kind: StmtEdge, Edge: edge}, next, nil
		case TokenEquals:
			asg, next, err := ParseAssignment(c)
			if err != nil {
				return Statement[K]{}, c, err
			}
			return Statement[K]{Kind: StmtAssignment, Assignment: &asg}, next, nil
		default:
			node, next, err := ParseNode(c)
			if err != nil {
				return Statement[K]{}, c, err
			}
			return Statement[K]{Kind: StmtNode, Node: node}, next, nil
		}

	case TokenGraph, TokenNode, TokenEdge, TokenLBracket:
		attr, next, err := ParseAttrStmt(c)
		if err != nil {
			return Statement[K]{}, c, err
		}
		return Statement[K]{Kind: StmtAttr, Attr: attr}, next, nil
	}

	return Statement[K]{}, c, unexpected(tok, "statement", "statement list")
}

func isEdgeOp(kind TokenKind) bool {
	return kind == TokenArrow || kind == TokenDash
}

var attrTargets = map[TokenKind]AttrTarget{
	TokenGraph: TargetGraph,
	TokenNode:  TargetNode,
	TokenEdge:  TargetEdge,
}

// ParseAttrStmt consumes `[graph|node|edge] [attrs]...`.
func ParseAttrStmt(c Cursor) (*AttrStmt, Cursor, error) {
	stmt := &AttrStmt{Pos: c.Pos()}
	if target, ok := attrTargets[c.Peek().Kind]; ok {
		stmt.Target = target
		_, c = c.Next()
	}
	attrs, c, err := ParseAttributeList(c)
	if err != nil {
		return nil, c, err
	}
	stmt.Attributes = attrs
	return stmt, c, nil
}

// ParseGraph consumes `[strict] (graph|digraph) ID { stmts }` with the
// introducer keyword of K. Input after the closing brace is not examined.
func ParseGraph[K Kind](c Cursor) (*Graph[K], Cursor, error) {
	g := &Graph[K]{Pos: c.Pos()}
	if c.Is(TokenStrict) {
		_, c = c.Next()
		g.Strict = true
	}

	intro := introducerOf[K]()
	if tok := c.Peek(); tok.Kind != intro {
		err := unexpected(tok, intro.String(), "graph")
		if se, ok := err.(*SyntaxError); ok && (tok.Kind == TokenGraph || tok.Kind == TokenDigraph) {
			se.Message = "document is a " + tok.Literal + ", parsed as a " + KindOf[K]().String()
		}
		return nil, c, err
	}
	_, c = c.Next()

	id, c, err := parseID(c, "graph")
	if err != nil {
		return nil, c, err
	}
	g.ID = id

	if _, c, err = c.Expect(TokenLBrace, "graph"); err != nil {
		return nil, c, err
	}
	stmts, c, err := parseStatements[K](c, "graph")
	if err != nil {
		return nil, c, err
	}
	g.Statements = stmts
	return g, c, nil
}
