package querydef

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/stroiman/dataaccess/internal/querysql"
	"github.com/stroiman/dataaccess/internal/value"
)

// Built is a compiled-ready query plus the tables it was built from.
type Built struct {
	Query  querysql.Query
	Tables map[string]*querysql.Table
}

// Build turns the definition into querysql objects.
func (d *Definition) Build() (*Built, error) {
	if (d.Select == nil) == (d.Insert == nil) {
		return nil, newError(ErrCodeShape, "query", "exactly one of select or insert must be set")
	}

	b := &builder{tables: make(map[string]*querysql.Table, len(d.Tables))}
	keys := make([]string, 0, len(d.Tables))
	for key := range d.Tables {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		def := d.Tables[key]
		if def.Name == "" {
			return nil, newError(ErrCodeSchema, "tables."+key, "table name is required")
		}
		b.tables[key] = querysql.NewTable(def.Name, def.Fields...)
	}

	var (
		q   querysql.Query
		err error
	)
	if d.Select != nil {
		q, err = b.buildSelect(d.Select)
	} else {
		q, err = b.buildInsert(d.Insert)
	}
	if err != nil {
		return nil, err
	}
	return &Built{Query: q, Tables: b.tables}, nil
}

type builder struct {
	tables map[string]*querysql.Table
}

func (b *builder) table(path, key string) (*querysql.Table, error) {
	t, ok := b.tables[key]
	if !ok {
		return nil, newError(ErrCodeReference, path, "unknown table key %q", key)
	}
	return t, nil
}

// field resolves "<tableKey>.<field>".
func (b *builder) field(path, ref string) (*querysql.FieldReference, error) {
	key, name, ok := strings.Cut(ref, ".")
	if !ok || key == "" || name == "" {
		return nil, newError(ErrCodeReference, path, "field reference %q must be <table>.<field>", ref)
	}
	t, err := b.table(path, key)
	if err != nil {
		return nil, err
	}
	return t.Field(name), nil
}

func (b *builder) buildSelect(def *SelectDef) (*querysql.SelectQuery, error) {
	if len(def.From) == 0 {
		return nil, newError(ErrCodeShape, "select.from", "at least one table is required")
	}

	q := querysql.NewSelectQuery()
	used := make(map[string]bool)
	use := func(path, key string) (*querysql.Table, error) {
		if used[key] {
			return nil, newError(ErrCodeDuplicate, path, "table %q is already in the query", key)
		}
		used[key] = true
		return b.table(path, key)
	}

	for i, from := range def.From {
		path := fmt.Sprintf("select.from[%d]", i)
		t, err := use(path+".table", from.Table)
		if err != nil {
			return nil, err
		}

		var node querysql.TableNode = t
		for j, jd := range from.Joins {
			jpath := fmt.Sprintf("%s.joins[%d]", path, j)
			right, err := use(jpath+".table", jd.Table)
			if err != nil {
				return nil, err
			}
			joinType, err := parseJoinType(jpath+".type", jd.Type)
			if err != nil {
				return nil, err
			}
			join := querysql.NewJoin(node, right, joinType)
			if jd.On != nil {
				on, err := b.predicate(jpath+".on", *jd.On)
				if err != nil {
					return nil, err
				}
				join.On(on)
			}
			node = join
		}
		q.AddTable(node)
	}

	for i, key := range def.Project {
		t, err := b.table(fmt.Sprintf("select.project[%d]", i), key)
		if err != nil {
			return nil, err
		}
		q.AddSelectFields(t)
	}
	for i, ref := range def.Fields {
		f, err := b.field(fmt.Sprintf("select.fields[%d]", i), ref)
		if err != nil {
			return nil, err
		}
		q.AddSelectField(f)
	}
	for i, pd := range def.Where {
		p, err := b.predicate(fmt.Sprintf("select.where[%d]", i), pd)
		if err != nil {
			return nil, err
		}
		q.AddWhere(p)
	}
	for i, ref := range def.OrderBy {
		f, err := b.field(fmt.Sprintf("select.orderBy[%d]", i), ref)
		if err != nil {
			return nil, err
		}
		q.OrderBy(f)
	}
	return q, nil
}

func parseJoinType(path, s string) (querysql.JoinType, error) {
	switch s {
	case "", "left":
		return querysql.JoinLeft, nil
	case "inner":
		return querysql.JoinInner, nil
	default:
		return 0, newError(ErrCodeSchema, path, "join type %q must be left or inner", s)
	}
}

func (b *builder) buildInsert(def *InsertDef) (*querysql.InsertQuery, error) {
	if len(def.Values) == 0 {
		return nil, newError(ErrCodeShape, "insert.values", "at least one value is required")
	}

	name := def.Table
	if t, ok := b.tables[def.Table]; ok {
		name = t.Name()
	}
	if name == "" {
		return nil, newError(ErrCodeSchema, "insert.table", "table is required")
	}

	q := querysql.NewInsertQuery(name)
	for i, vd := range def.Values {
		path := fmt.Sprintf("insert.values[%d]", i)
		if vd.Field == "" {
			return nil, newError(ErrCodeSchema, path+".field", "field is required")
		}
		if vd.Value.Field != "" {
			return nil, newError(ErrCodeShape, path+".value", "insert values must be literals")
		}
		v, err := literal(path+".value", vd.Value)
		if err != nil {
			return nil, err
		}
		q.SetBounded(vd.Field, v, vd.MaxLength)
	}
	return q, nil
}

func (b *builder) predicate(path string, pd PredicateDef) (querysql.WherePart, error) {
	set := 0
	for _, isSet := range []bool{
		pd.Equals != nil, pd.LessThan != nil, pd.Like != nil, pd.StartsWith != nil,
		pd.IsNull != "", pd.FullText != nil, pd.And != nil, pd.Or != nil,
	} {
		if isSet {
			set++
		}
	}
	if set != 1 {
		return nil, newError(ErrCodeShape, path, "exactly one predicate must be set, got %d", set)
	}

	switch {
	case pd.Equals != nil:
		left, right, err := b.operandPair(path+".equals", pd.Equals)
		if err != nil {
			return nil, err
		}
		return querysql.Equals(left, right), nil

	case pd.LessThan != nil:
		left, right, err := b.operandPair(path+".lessThan", pd.LessThan)
		if err != nil {
			return nil, err
		}
		return querysql.LessThan(left, right), nil

	case pd.Like != nil:
		f, err := b.field(path+".like.field", pd.Like.Field)
		if err != nil {
			return nil, err
		}
		return f.Like(pd.Like.Text), nil

	case pd.StartsWith != nil:
		f, err := b.field(path+".startsWith.field", pd.StartsWith.Field)
		if err != nil {
			return nil, err
		}
		return f.StartsWith(pd.StartsWith.Text), nil

	case pd.IsNull != "":
		f, err := b.field(path+".isNull", pd.IsNull)
		if err != nil {
			return nil, err
		}
		return f.IsNull(), nil

	case pd.FullText != nil:
		fields := make([]*querysql.FieldReference, 0, len(pd.FullText.Fields))
		for i, ref := range pd.FullText.Fields {
			f, err := b.field(fmt.Sprintf("%s.fullText.fields[%d]", path, i), ref)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		// Definition files may carry decomposed text; search with the composed form.
		return querysql.FullText(norm.NFC.String(pd.FullText.Text), fields...), nil

	case pd.And != nil:
		return b.operator(path+".and", querysql.OpAnd, pd.And)

	default:
		return b.operator(path+".or", querysql.OpOr, pd.Or)
	}
}

func (b *builder) operator(path, op string, defs []PredicateDef) (*querysql.OperatorClause, error) {
	clause := querysql.NewOperatorClause(op)
	for i, pd := range defs {
		p, err := b.predicate(fmt.Sprintf("%s[%d]", path, i), pd)
		if err != nil {
			return nil, err
		}
		clause.AddPart(p)
	}
	return clause, nil
}

func (b *builder) operandPair(path string, defs []OperandDef) (querysql.WherePart, querysql.WherePart, error) {
	if len(defs) != 2 {
		return nil, nil, newError(ErrCodeShape, path, "expected 2 operands, got %d", len(defs))
	}
	left, err := b.operand(path+"[0]", defs[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := b.operand(path+"[1]", defs[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (b *builder) operand(path string, od OperandDef) (querysql.WherePart, error) {
	if od.Field != "" {
		if n := countLiterals(od); n != 0 {
			return nil, newError(ErrCodeShape, path, "operand sets both field and a literal")
		}
		return b.field(path+".field", od.Field)
	}
	v, err := literal(path, od)
	if err != nil {
		return nil, err
	}
	return &querysql.Constant{Value: v}, nil
}

func countLiterals(od OperandDef) int {
	n := 0
	for _, isSet := range []bool{
		od.Int != nil, od.Long != nil, od.Bool != nil, od.String != nil,
		od.Decimal != "", od.DateTime != "", od.GUID != "", od.NullOf != "",
	} {
		if isSet {
			n++
		}
	}
	return n
}

// literal converts a literal operand to a value.Value.
func literal(path string, od OperandDef) (value.Value, error) {
	if n := countLiterals(od); n != 1 {
		return nil, newError(ErrCodeShape, path, "exactly one literal must be set, got %d", n)
	}

	switch {
	case od.Int != nil:
		return value.Int(*od.Int), nil
	case od.Long != nil:
		return value.Long(*od.Long), nil
	case od.Bool != nil:
		return value.Bool(*od.Bool), nil
	case od.String != nil:
		return value.String(*od.String), nil
	case od.Decimal != "":
		d, err := value.NewDecimal(od.Decimal)
		if err != nil {
			return nil, newError(ErrCodeValue, path+".decimal", "%v", err)
		}
		return d, nil
	case od.DateTime != "":
		t, err := time.Parse(time.RFC3339Nano, od.DateTime)
		if err != nil {
			return nil, newError(ErrCodeValue, path+".dateTime", "%v", err)
		}
		return value.DateTime(t), nil
	case od.GUID != "":
		id, err := uuid.Parse(od.GUID)
		if err != nil {
			return nil, newError(ErrCodeValue, path+".guid", "%v", err)
		}
		return value.GUID(id), nil
	default:
		kind, err := value.ParseKind(od.NullOf)
		if err != nil {
			return nil, newError(ErrCodeValue, path+".nullOf", "%v", err)
		}
		return value.Null{Of: kind}, nil
	}
}
