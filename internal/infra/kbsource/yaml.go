package kbsource

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/ccs-faqbot/internal/domain/faq"
)

// Document is the on-disk shape of a knowledge base.
//
//	entries:
//	  - id: ferias_basico
//	    tags: [ferias, marcar ferias]
//	    patterns: [como marcar ferias]
//	    answer: |
//	      FÉRIAS — ...
//	  - id: fallback
//	    answer: Não encontrei ...
//	menu:
//	  - title: Férias
//	    description: Pergunte sobre períodos, prazos e agendamento.
type Document struct {
	Entries []faq.Entry    `yaml:"entries"`
	Menu    []faq.MenuItem `yaml:"menu"`
}

// Decode parses a YAML document and validates it into a knowledge base.
// Unknown fields are rejected so typos in the file fail at startup.
func Decode(r io.Reader) (*faq.KnowledgeBase, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, sourceError("knowledge base document is empty", nil)
		}
		return nil, sourceError("parse knowledge base", err)
	}
	kb, err := faq.NewKnowledgeBase(doc.Entries, doc.Menu)
	if err != nil {
		return nil, fmt.Errorf("yaml knowledge base: %w", err)
	}
	return kb, nil
}

// Encode writes a knowledge base in the format Decode accepts.
func Encode(w io.Writer, kb *faq.KnowledgeBase) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Entries: kb.Entries(), Menu: kb.Menu()}); err != nil {
		return sourceError("encode knowledge base", err)
	}
	return enc.Close()
}
