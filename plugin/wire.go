package plugin

// A Request is written to the plugin's stdin, encoded as JSON.
type Request struct {
	// FileToGenerate names the documents the plugin should generate
	// output for.
	FileToGenerate []string `json:"file_to_generate"`

	// Parameter carries the generator options as a JSON object.
	Parameter string `json:"parameter,omitempty"`

	// Documents holds the processed doc sources named by FileToGenerate.
	Documents []*Document `json:"documents"`
}

// A Document is one processed doc source.
type Document struct {
	Name  string  `json:"name"`
	Decls []*Decl `json:"decls"`
}

// A Decl is one documented declaration.
type Decl struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Anchor      string `json:"anchor"`
	Signature   string `json:"signature"`
	Description string `json:"description,omitempty"`
}

// A Response is read from the plugin's stdout, encoded as JSON.
type Response struct {
	// Error aborts generation and is reported to the user.
	Error string `json:"error,omitempty"`

	// File lists the files the plugin wants written.
	File []*File `json:"file"`
}

// A File is one output file requested by a plugin.
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
