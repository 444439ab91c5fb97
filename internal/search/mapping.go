package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// mappingVersion changes whenever buildIndexMapping does; an index written
// with another version is rebuilt on open.
const mappingVersion = "1"

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	text := bleve.NewTextFieldMapping()
	text.Analyzer = en.AnalyzerName
	text.Store = true
	text.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("text", text)

	title := bleve.NewTextFieldMapping()
	title.Analyzer = en.AnalyzerName
	title.Store = true
	title.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("title", title)

	chapter := bleve.NewTextFieldMapping()
	chapter.Analyzer = en.AnalyzerName
	chapter.Store = true
	docMapping.AddFieldMappingsAt("chapter", chapter)

	stem := bleve.NewTextFieldMapping()
	stem.Analyzer = keyword.Name
	stem.Store = true
	docMapping.AddFieldMappingsAt("stem", stem)

	published := bleve.NewTextFieldMapping()
	published.Analyzer = keyword.Name
	published.Store = true
	docMapping.AddFieldMappingsAt("published", published)

	number := bleve.NewNumericFieldMapping()
	number.Store = true
	docMapping.AddFieldMappingsAt("number", number)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}
