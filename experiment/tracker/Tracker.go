// Package tracker defines Trackers, which cache data generated during
// training and save it to disk once training is over
package tracker

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/pegsolitaire/timestep"
)

// Tracker keeps track of experiment data and saves the data after the
// experiment has finished. Track is called with every TimeStep of every
// episode, in order.
type Tracker interface {
	Track(t ts.TimeStep)
	Data() []float64
	Save() error
}

// SaveData saves data to filename so that it can be read with LoadData
func SaveData(filename string, data []float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saveData: could not open save file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("saveData: could not encode data: %w", err)
	}
	return nil
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadData: could not open data file: %w", err)
	}
	defer file.Close()

	var data []float64
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("loadData: could not decode data: %w", err)
	}
	return data, nil
}
