package plugins

// Template is the minimal plugin. Its convert form returns the body and its
// action form returns the document unchanged.
type Template struct{}

func (Template) Name() string { return "template" }

func (Template) Description() string { return "returns its body, or the whole document as an action" }

func (Template) Convert(_ []string, body string) (string, error) {
	return body, nil
}

func (Template) Action(_ []string, _, text string) (string, error) {
	return text, nil
}
