package fix

// ProcessorOptions controls how a Processor picks text out of a record.
type ProcessorOptions struct {
	// Delimiter splits a record into fields.
	Delimiter string
	// Field is the 1-based index of the field to correct.
	Field int
}

// DefaultProcessorOptions corrects the first tab separated field.
var DefaultProcessorOptions = ProcessorOptions{
	Delimiter: "\t",
	Field:     1,
}

type Option interface {
	Apply(options *ProcessorOptions)
}

type FuncOption struct {
	ops func(options *ProcessorOptions)
}

func (o FuncOption) Apply(options *ProcessorOptions) {
	o.ops(options)
}

func NewFuncOption(f func(options *ProcessorOptions)) *FuncOption {
	return &FuncOption{ops: f}
}

func WithDelimiter(delimiter string) Option {
	return NewFuncOption(func(options *ProcessorOptions) {
		options.Delimiter = delimiter
	})
}

func WithField(field int) Option {
	return NewFuncOption(func(options *ProcessorOptions) {
		options.Field = field
	})
}
