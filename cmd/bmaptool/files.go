package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"bolo-mapkit/internal/errtrace"
	"bolo-mapkit/pkg/bmap"
)

// loadMap reads and repairs the map at path. Repairs are logged when
// verbose; a failed load prints its trace.
func (a *app) loadMap(path string) (*bmap.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tr := errtrace.New()
	m, report, err := bmap.Codec{Trace: tr}.Load(data)
	if err != nil {
		a.dumpTrace(tr)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if a.cfg.Verbose {
		for _, r := range report {
			log.Printf("%s: repaired %s", path, r)
		}
	}
	return m, nil
}

// saveMap encodes m and writes it to path, keeping a .bak copy of any file
// it replaces when backups are on.
func (a *app) saveMap(path string, m *bmap.Map) error {
	tr := errtrace.New()
	data, err := bmap.Codec{Trace: tr}.Save(m)
	if err != nil {
		a.dumpTrace(tr)
		return fmt.Errorf("%s: %w", path, err)
	}

	if a.cfg.Backup {
		if err := backup(path); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	log.Printf("Wrote %s (%d bytes)", path, len(data))
	return nil
}

func (a *app) dumpTrace(tr *errtrace.Trace) {
	if !a.cfg.Verbose || tr.Len() == 0 {
		return
	}
	log.Printf("Trace %s:", tr.ID)
	tr.WriteTo(os.Stderr)
}

// backup copies path to path.bak. A missing file needs no backup.
func backup(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path+".bak", data, 0o644)
}
