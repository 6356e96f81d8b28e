// Package archive packs files and directory trees into zip archives
// for download payloads.
package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Zip writes the named files and directory trees to w as a zip
// archive. A directory's members keep their paths relative to the
// directory's parent, so unpacking recreates the tree under its
// original name. Non-regular files other than directories are
// skipped.
func Zip(w io.Writer, paths []string) error {
	zw := zip.NewWriter(w)
	for _, p := range paths {
		if err := addPath(zw, p); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

// Bytes zips paths into memory.
func Bytes(paths []string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Zip(&buf, paths); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Name suggests a filename for the archive of paths, after the single
// path's base name when there is one.
func Name(paths []string) string {
	if len(paths) == 1 {
		base := filepath.Base(filepath.Clean(paths[0]))
		if base != "/" && base != "." && base != "" {
			return base + ".zip"
		}
	}
	return "files.zip"
}

func addPath(zw *zip.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return addFile(zw, path, filepath.Base(path), info)
	}
	root := filepath.Dir(filepath.Clean(path))
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		return addFile(zw, p, filepath.ToSlash(rel), fi)
	})
}

func addFile(zw *zip.Writer, path, name string, info fs.FileInfo) error {
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
