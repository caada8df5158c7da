package querysql

import "fmt"

// aliasMap assigns positional aliases t1, t2, ... to tables by pointer
// identity. It lives on the query, never on the table.
type aliasMap struct {
	aliases map[*Table]string
	order   []*Table
}

func newAliasMap() *aliasMap {
	return &aliasMap{aliases: make(map[*Table]string)}
}

// add assigns the next alias to every table reachable from node, left
// operand before right. Adding the same *Table twice is a programming error.
func (m *aliasMap) add(node TableNode) {
	node.eachTable(func(t *Table) {
		if _, exists := m.aliases[t]; exists {
			panic(fmt.Sprintf("querysql: table %q already added to query", t.Name()))
		}
		m.order = append(m.order, t)
		m.aliases[t] = fmt.Sprintf("t%d", len(m.order))
	})
}

// resolve returns the alias assigned to t.
func (m *aliasMap) resolve(t *Table) (string, error) {
	alias, ok := m.aliases[t]
	if !ok {
		return "", &UnknownTableError{TableName: t.Name()}
	}
	return alias, nil
}

// find returns the first table added under the given name.
func (m *aliasMap) find(name string) *Table {
	for _, t := range m.order {
		if t.Name() == name {
			return t
		}
	}
	return nil
}
