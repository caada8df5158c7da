package querysql

import (
	"strconv"
	"strings"

	"github.com/stroiman/dataaccess/internal/value"
)

// buildContext is the per-compile accumulator threaded through every render
// call. It is created by SQLCompiler.Compile and discarded afterwards.
type buildContext struct {
	sb           strings.Builder
	params       []any
	factory      ParameterFactory
	resolveAlias func(*Table) (string, error)
}

func newBuildContext(factory ParameterFactory, resolve func(*Table) (string, error)) *buildContext {
	return &buildContext{
		factory:      factory,
		resolveAlias: resolve,
	}
}

// nextParameterName returns the name for the next parameter: "p" followed by
// the number of parameters created so far plus one.
func (c *buildContext) nextParameterName() string {
	return "p" + strconv.Itoa(len(c.params)+1)
}

func (c *buildContext) write(s string) {
	c.sb.WriteString(s)
}

// writeIdent writes name in bracket quoting. Brackets inside name are not
// escaped.
func (c *buildContext) writeIdent(name string) {
	c.sb.WriteByte('[')
	c.sb.WriteString(name)
	c.sb.WriteByte(']')
}

// bind creates one parameter for v through the factory, appends it to the
// parameter list and writes its placeholder.
func (c *buildContext) bind(v value.Value, maxLength int) error {
	name := c.nextParameterName()
	param, err := createParameter(c.factory, name, v, maxLength)
	if err != nil {
		return err
	}
	c.params = append(c.params, param)
	c.write("@" + name)
	return nil
}

func (c *buildContext) alias(t *Table) (string, error) {
	if c.resolveAlias == nil {
		return "", &UnknownTableError{TableName: t.Name()}
	}
	return c.resolveAlias(t)
}

func (c *buildContext) result() (string, []any) {
	return c.sb.String(), c.params
}
