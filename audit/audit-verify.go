package audit

import (
	"bufio"
	hmac2 "crypto/hmac"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Verify replays the whole chain and fails on the first line whose hash,
// HMAC or index does not match what the predecessor demands.
func Verify(path string, key []byte) error {
	if len(key) == 0 {
		return errors.New("HMAC key is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	if !sc.Scan() {
		return errors.New("audit log is empty")
	}

	var hdr header
	if err = json.Unmarshal(sc.Bytes(), &hdr); err != nil || hdr.Kind != "hdr" {
		return errors.New("audit log header is missing or malformed")
	}

	prevHash := hdr.SeedHex
	wantIndex := uint64(1)
	line := 1

	for sc.Scan() {
		line++
		var signed signedEntry
		if err = json.Unmarshal(sc.Bytes(), &signed); err != nil {
			return fmt.Errorf("line %d: malformed entry: %w", line, err)
		}

		if signed.Entry.Index != wantIndex {
			return fmt.Errorf("line %d: index %d, want %d", line, signed.Entry.Index, wantIndex)
		}
		if signed.PrevHash != prevHash {
			return fmt.Errorf("line %d: chain broken (prev_hash mismatch)", line)
		}

		hashHex, macHex, err := sealEntry(signed.Entry, prevHash, key)
		if err != nil {
			return err
		}
		if hashHex != signed.Hash {
			return fmt.Errorf("line %d: entry hash mismatch, log has been altered", line)
		}
		if !hmac2.Equal([]byte(macHex), []byte(signed.HMAC)) {
			return fmt.Errorf("line %d: HMAC mismatch, log has been altered or signed with a different key", line)
		}

		prevHash = hashHex
		wantIndex++
	}
	return sc.Err()
}

func scanTail(path string) (lastHashHex string, nextIndex uint64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	if !sc.Scan() {
		return "", 0, errors.New("audit log is empty")
	}

	var hdr header
	if err = json.Unmarshal(sc.Bytes(), &hdr); err != nil || hdr.Kind != "hdr" {
		return "", 0, errors.New("audit log header is missing or malformed")
	}

	lastHashHex = hdr.SeedHex
	nextIndex = 1

	for sc.Scan() {
		var signed signedEntry
		if err = json.Unmarshal(sc.Bytes(), &signed); err != nil {
			return "", 0, fmt.Errorf("malformed audit entry: %w", err)
		}
		lastHashHex = signed.Hash
		nextIndex = signed.Entry.Index + 1
	}
	return lastHashHex, nextIndex, sc.Err()
}
