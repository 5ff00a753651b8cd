package emit

var (
	PyString    = pyString
	PyList      = pyList
	SourceLines = sourceLines
)
