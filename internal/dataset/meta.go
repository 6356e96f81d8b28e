package dataset

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/qri-io/dataset/compression"
)

// MetaKey is the store key holding dataset metadata.
const MetaKey = "dataset.json"

// chunkKey returns the store key of a variable's data file.
func chunkKey(v *Variable) string {
	if v.File != "" {
		return v.File
	}
	return v.Name + ".f64"
}

// Open reads a dataset from a store: metadata, then every variable's
// values. Values travel as little-endian float64; a non-empty codec id
// other than "raw" is resolved through the compression registry.
// Dimensions without inline coordinates adopt the values of a 1-D
// variable of the same name, or fall back to index coordinates
// 0..length-1.
func Open(store Store) (*Dataset, error) {
	rc, err := store.Get(MetaKey)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	ds := &Dataset{}
	if err := json.NewDecoder(rc).Decode(ds); err != nil {
		return nil, fmt.Errorf("dataset: decoding %s: %w", MetaKey, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	for i := range ds.Vars {
		if err := loadVariable(store, ds, &ds.Vars[i]); err != nil {
			return nil, err
		}
	}

	for i := range ds.Dims {
		d := &ds.Dims[i]
		if len(d.Coords) > 0 {
			continue
		}
		if cv, ok := ds.Var(d.Name); ok && len(cv.Dims) == 1 && cv.Dims[0] == d.Name {
			d.Coords = cv.Data
			continue
		}
		d.Coords = make([]float64, d.Length)
		for j := range d.Coords {
			d.Coords[j] = float64(j)
		}
	}

	return ds, ds.Validate()
}

// OpenPath opens a dataset stored as a directory on the local
// filesystem.
func OpenPath(path string) (*Dataset, error) {
	store, err := NewLocalStore(path)
	if err != nil {
		return nil, err
	}
	return Open(store)
}

func loadVariable(store Store, ds *Dataset, v *Variable) error {
	shape, err := ds.Shape(v)
	if err != nil {
		return err
	}
	rc, err := store.Get(chunkKey(v))
	if err != nil {
		return fmt.Errorf("dataset: variable %s: %w", v.Name, err)
	}
	defer rc.Close()

	r := io.ReadCloser(rc)
	if v.Codec != "" && v.Codec != "raw" {
		r, err = compression.Decompressor(v.Codec, rc)
		if err != nil {
			return fmt.Errorf("dataset: variable %s: codec %q: %w", v.Name, v.Codec, err)
		}
		defer r.Close()
	}

	data := make([]float64, Size(shape))
	if err := binary.Read(bufio.NewReader(r), binary.LittleEndian, data); err != nil {
		return fmt.Errorf("dataset: variable %s: reading values: %w", v.Name, err)
	}
	v.Data = data
	return nil
}

// Save writes the dataset's metadata and every loaded variable to a
// store. Values are always written uncompressed, so codec ids are
// cleared in the written metadata.
func (ds *Dataset) Save(store Store) error {
	if err := ds.Validate(); err != nil {
		return err
	}

	meta := *ds
	meta.Vars = append([]Variable(nil), ds.Vars...)
	for i := range meta.Vars {
		meta.Vars[i].File = chunkKey(&meta.Vars[i])
		meta.Vars[i].Codec = ""
	}
	head, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return fmt.Errorf("dataset: encoding %s: %w", MetaKey, err)
	}
	if err := store.Put(MetaKey, bytes.NewReader(head)); err != nil {
		return err
	}

	for i := range ds.Vars {
		v := &ds.Vars[i]
		if v.Data == nil {
			return fmt.Errorf("dataset: variable %s has no data to save", v.Name)
		}
		var buf bytes.Buffer
		if err := binary.Write(&buf, binary.LittleEndian, v.Data); err != nil {
			return fmt.Errorf("dataset: variable %s: encoding values: %w", v.Name, err)
		}
		if err := store.Put(chunkKey(v), &buf); err != nil {
			return fmt.Errorf("dataset: variable %s: %w", v.Name, err)
		}
	}
	return nil
}
