package errors

// ErrorBuilder assembles a ClassifiedError. The zero severity is taken from the
// category, so ThemeError and ConfigError are fatal unless told otherwise.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of category with message.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: category.traits().severity,
		message:  message,
	}}
}

// WrapError starts an error of category that wraps err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

// WithContext records a key/value pair that is shown in logs.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.Set(key, value)
	return b
}

func (b *ErrorBuilder) WithContextMap(ctx ErrorContext) *ErrorBuilder {
	b.err.context = b.err.context.Merge(ctx)
	return b
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder   { return b.WithSeverity(SeverityFatal) }
func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }
func (b *ErrorBuilder) Info() *ErrorBuilder    { return b.WithSeverity(SeverityInfo) }

// Build returns the error. The builder can keep being used; later calls do not
// affect errors already built.
func (b *ErrorBuilder) Build() *ClassifiedError {
	out := b.err
	out.context = ErrorContext{}.Merge(b.err.context)
	return &out
}

func ValidationError(message string) *ErrorBuilder { return NewError(CategoryValidation, message) }
func ConfigError(message string) *ErrorBuilder     { return NewError(CategoryConfig, message) }
func NotFoundError(message string) *ErrorBuilder   { return NewError(CategoryNotFound, message) }

// StateError reports an operation called before its prerequisites ran.
func StateError(message string) *ErrorBuilder { return NewError(CategoryState, message) }

func ContentError(message string) *ErrorBuilder    { return NewError(CategoryContent, message) }
func ThemeError(message string) *ErrorBuilder      { return NewError(CategoryTheme, message) }
func GenerationError(message string) *ErrorBuilder { return NewError(CategoryGeneration, message) }
func FileSystemError(message string) *ErrorBuilder { return NewError(CategoryFileSystem, message) }
func HistoryError(message string) *ErrorBuilder    { return NewError(CategoryHistory, message) }
func InternalError(message string) *ErrorBuilder   { return NewError(CategoryInternal, message) }
