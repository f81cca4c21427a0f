// Package view describes what a controller wants shown: a named view with
// its data bag, or a redirect.
package view

// Data is the data bag handed to a view.
type Data map[string]interface{}

// Outcome is either a render instruction or a redirect, never both.
type Outcome struct {
	View     string
	Data     Data
	Redirect string
}

func Render(name string, data Data) Outcome {
	if data == nil {
		data = Data{}
	}
	return Outcome{View: name, Data: data}
}

func RedirectTo(path string) Outcome {
	return Outcome{Redirect: path}
}

func (o Outcome) IsRedirect() bool {
	return o.Redirect != ""
}
