// Package parquetio persists bdf frames as Parquet files and reads
// them back. Writing goes through xitongsys parquet-go's JSONWriter;
// reading goes through segmentio parquet-go, taking the schema from
// the file footer so round-tripped tables keep exact names and kinds.
package parquetio

import (
	"encoding/json"
	"fmt"

	"github.com/battkit/bdfconvert/pkg/bdf"
	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"
)

func parquetSchemaJSON(s bdf.Schema) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case bdf.KindFloat:
			tag += "DOUBLE"
		case bdf.KindInt:
			tag += "INT64"
		default:
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes a frame to path, replacing any existing file.
func WriteAll(path string, f *bdf.Frame) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(parquetSchemaJSON(f.Schema()), fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() { _ = writer.WriteStop(); _ = fw.Close() }()

	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(f.Schema().Columns))
		for _, cs := range f.Schema().Columns {
			col, _ := f.Column(cs.Name)
			switch cs.Type {
			case bdf.KindFloat:
				if v, ok := col.(*bdf.FloatSeries).Get(r); ok {
					rec[cs.Name] = v
				}
			case bdf.KindInt:
				if v, ok := col.(*bdf.IntSeries).Get(r); ok {
					rec[cs.Name] = v
				}
			default:
				if v, ok := col.(*bdf.StringSeries).Get(r); ok {
					rec[cs.Name] = v
				}
			}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("parquet encode row: %w", err)
		}
		if err := writer.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	return nil
}
