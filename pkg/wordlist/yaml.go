package wordlist

// yamlList is the on-disk YAML shape of a word list.
//
//	name: project-words
//	words:
//	  - kubectl
//	  - protobuf
type yamlList struct {
	Name        string   `yaml:"name,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Words       []string `yaml:"words"`
}
