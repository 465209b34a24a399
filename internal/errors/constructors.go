package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *SiteError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found: "+path).
		WithContext("path", path)
}

// ConfigInvalid reports an operator misconfiguration. The message is shown to
// the operator verbatim, so it should name the offending option.
func ConfigInvalid(message string) *SiteError {
	return New(CategoryConfig, SeverityFatal, message)
}

func ValidationFailed(field, reason string) *SiteError {
	return New(CategoryValidation, SeverityFatal, "validation failed for "+field+": "+reason).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Plugin and render pipeline errors

func PluginFailed(plugin string, cause error) *SiteError {
	return Wrap(cause, CategoryPlugin, SeverityFatal, "plugin "+plugin+" failed").
		WithContext("plugin", plugin)
}

func RenderFailed(page string, cause error) *SiteError {
	return Wrap(cause, CategoryRender, SeverityFatal, "render failed").
		WithContext("page", page)
}

func OutputError(operation string, cause error) *SiteError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *SiteError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
