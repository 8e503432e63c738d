package scene

import (
	"archive/zip"
	"encoding/gob"
	"errors"
	"os"
	"time"

	"github.com/FluffyLoaf254/swirlix/log"
)

// Name of the data entry inside a sculpt archive.
const dataFile = "sculpt.bin"

var (
	ErrNoDataFile = errors.New("scene: archive contains no sculpt data")
)

var logger = log.New("scene")

// Write a scene to a compressed sculpt archive.
func Write(sceneFile string, sc *Scene) error {
	logger.Noticef("writing compressed sculpt to %s", sceneFile)
	start := time.Now()

	zipFile, err := os.Create(sceneFile)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)
	defer zw.Close()

	cw, err := zw.Create(dataFile)
	if err != nil {
		return err
	}
	if err = gob.NewEncoder(cw).Encode(sc); err != nil {
		return err
	}

	logger.Noticef("compressed sculpt in %d ms", time.Since(start).Nanoseconds()/1000000)
	return nil
}

// Read a scene from a compressed sculpt archive.
func Read(sceneFile string) (*Scene, error) {
	logger.Noticef("parsing compressed sculpt from %s", sceneFile)
	start := time.Now()

	zr, err := zip.OpenReader(sceneFile)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != dataFile {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		sc := &Scene{}
		if err = gob.NewDecoder(rc).Decode(sc); err != nil {
			return nil, err
		}

		logger.Noticef("parsed compressed sculpt in %d ms", time.Since(start).Nanoseconds()/1000000)
		return sc, nil
	}

	return nil, ErrNoDataFile
}
