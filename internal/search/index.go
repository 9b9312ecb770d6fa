// Package search provides full-text search over fetched catalog records
// using a Bleve index stored next to the database.
package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/HerwigLab/IsoTools2/internal/catalog"
)

// Index wraps the Bleve search index over catalog records.
type Index struct {
	index bleve.Index
	path  string
}

// Open opens an existing index or creates a new one at the given path.
func Open(indexPath string) (*Index, error) {
	index, err := bleve.Open(indexPath)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(indexPath, createRecordIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	return &Index{index: index, path: indexPath}, nil
}

// createRecordIndexMapping builds the field mappings for catalog records.
// Accessions and controlled-vocabulary fields use the keyword analyzer
// for exact matching; term names are analyzed as text.
func createRecordIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = "standard"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("file", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("experiment", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("output_type", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("status", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("term_name", textFieldMapping())
	docMapping.AddFieldMappingsAt("biosample_type", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("technical_replicate", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("platform", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("download_url", storedOnlyFieldMapping())

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func keywordFieldMapping() *mapping.FieldMapping {
	fieldMapping := bleve.NewTextFieldMapping()
	fieldMapping.Analyzer = "keyword"
	fieldMapping.Store = true
	fieldMapping.IncludeInAll = true
	return fieldMapping
}

func textFieldMapping() *mapping.FieldMapping {
	fieldMapping := bleve.NewTextFieldMapping()
	fieldMapping.Analyzer = "standard"
	fieldMapping.Store = true
	fieldMapping.IncludeInAll = true
	return fieldMapping
}

func storedOnlyFieldMapping() *mapping.FieldMapping {
	fieldMapping := bleve.NewTextFieldMapping()
	fieldMapping.Analyzer = "keyword"
	fieldMapping.Store = true
	fieldMapping.IncludeInAll = false
	return fieldMapping
}

// RecordDoc is the indexed form of a catalog record.
type RecordDoc struct {
	File               string `json:"file"`
	Experiment         string `json:"experiment"`
	OutputType         string `json:"output_type"`
	Status             string `json:"status"`
	TermName           string `json:"term_name"`
	BiosampleType      string `json:"biosample_type"`
	TechnicalReplicate string `json:"technical_replicate"`
	Platform           string `json:"platform"`
	DownloadURL        string `json:"download_url"`
}

func docFromRecord(r catalog.Record) RecordDoc {
	return RecordDoc{
		File:               r.File,
		Experiment:         r.Experiment,
		OutputType:         r.OutputType,
		Status:             r.Status,
		TermName:           r.TermName,
		BiosampleType:      r.BiosampleType,
		TechnicalReplicate: r.TechnicalReplicate,
		Platform:           r.Platform,
		DownloadURL:        r.DownloadURL,
	}
}

// IndexRecord indexes a single catalog record, keyed by file accession.
func (ix *Index) IndexRecord(r catalog.Record) error {
	return ix.index.Index(r.File, docFromRecord(r))
}

// IndexRecords indexes records in batches of the given size. A size of
// zero indexes everything in one batch.
func (ix *Index) IndexRecords(records []catalog.Record, batchSize int) error {
	if batchSize <= 0 {
		batchSize = len(records)
	}
	batch := ix.index.NewBatch()
	for i, r := range records {
		if err := batch.Index(r.File, docFromRecord(r)); err != nil {
			return fmt.Errorf("failed to add record %s to batch: %w", r.File, err)
		}
		if (i+1)%batchSize == 0 {
			if err := ix.index.Batch(batch); err != nil {
				return err
			}
			batch = ix.index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		return ix.index.Batch(batch)
	}
	return nil
}

// Results is an alias for the underlying search result type.
type Results = bleve.SearchResult

// Search performs a full-text query-string search with facets over the
// controlled-vocabulary fields.
func (ix *Index) Search(queryStr string, limit int) (*bleve.SearchResult, error) {
	q := bleve.NewQueryStringQuery(queryStr)
	searchRequest := bleve.NewSearchRequest(q)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"*"}

	searchRequest.AddFacet("biosample_type", bleve.NewFacetRequest("biosample_type", 10))
	searchRequest.AddFacet("platform", bleve.NewFacetRequest("platform", 10))
	searchRequest.AddFacet("output_type", bleve.NewFacetRequest("output_type", 5))
	searchRequest.AddFacet("status", bleve.NewFacetRequest("status", 5))

	return ix.index.Search(searchRequest)
}

// SearchWithFilters combines an optional query string with exact-match
// field filters, ANDed together. With neither, everything matches.
func (ix *Index) SearchWithFilters(queryStr string, filters map[string]string, limit int) (*bleve.SearchResult, error) {
	var queries []query.Query

	if queryStr != "" {
		queries = append(queries, bleve.NewQueryStringQuery(queryStr))
	}
	for field, value := range filters {
		if field == "term_name" {
			phraseQuery := bleve.NewMatchPhraseQuery(value)
			phraseQuery.SetField(field)
			queries = append(queries, phraseQuery)
			continue
		}
		termQuery := bleve.NewTermQuery(value)
		termQuery.SetField(field)
		queries = append(queries, termQuery)
	}

	var finalQuery query.Query
	switch len(queries) {
	case 0:
		finalQuery = bleve.NewMatchAllQuery()
	case 1:
		finalQuery = queries[0]
	default:
		finalQuery = bleve.NewConjunctionQuery(queries...)
	}

	searchRequest := bleve.NewSearchRequest(finalQuery)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"*"}

	return ix.index.Search(searchRequest)
}

// Delete removes a record from the index by file accession.
func (ix *Index) Delete(fileAccession string) error {
	return ix.index.Delete(fileAccession)
}

// DocCount returns the number of indexed records.
func (ix *Index) DocCount() (uint64, error) {
	return ix.index.DocCount()
}

// Path returns the index location on disk.
func (ix *Index) Path() string {
	return ix.path
}

// Close closes the underlying index.
func (ix *Index) Close() error {
	return ix.index.Close()
}
