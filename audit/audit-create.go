package audit

import (
	hmac2 "crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/RasseTheBoy/ufw-tui/system/local"
	"github.com/RasseTheBoy/ufw-tui/ufw"
)

const currentVersion = 1

type header struct {
	Kind    string `json:"kind"`
	Version int    `json:"version"`
	Created string `json:"created"`
	Host    string `json:"host"`
	SeedHex string `json:"seed"`
}

type Entry struct {
	Kind   string `json:"kind"`
	Index  uint64 `json:"index"`
	Time   string `json:"time"`
	Actor  string `json:"actor"`
	Action string `json:"action"`
	Rule   string `json:"rule"`
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

type signedEntry struct {
	Entry    Entry  `json:"entry"`
	PrevHash string `json:"prev_hash"`
	Hash     string `json:"hash"`
	HMAC     string `json:"hmac"`
}

// Log is an append-only, hash-chained record of every change the editor
// pushed at the firewall engine. Each line carries the hash of its
// predecessor and an HMAC over its own hash, so truncation or edits in the
// middle of the file are detectable with the key.
type Log struct {
	mutex       sync.Mutex
	file        *os.File
	path        string
	key         []byte
	lastHashHex string
	nextIndex   uint64
}

func Open(path string, key []byte) (*Log, error) {
	if len(key) == 0 {
		return nil, errors.New("HMAC key is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}
	log := &Log{file: file, path: path, key: key}

	stat, _ := file.Stat()
	if stat.Size() == 0 {
		seed := make([]byte, 32)
		if _, err = rand.Read(seed); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to generate random seed: %w", err)
		}
		hdr := header{
			Kind:    "hdr",
			Version: currentVersion,
			Created: time.Now().Format("2006-01-02 15:04:05"),
			Host:    hostname(),
			SeedHex: hex.EncodeToString(seed),
		}
		if err = writeJSONLine(file, hdr); err != nil {
			_ = file.Close()
			return nil, err
		}
		log.lastHashHex = hdr.SeedHex
		log.nextIndex = 1
	} else {
		lastHash, nextIdx, err := scanTail(path)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		log.lastHashHex = lastHash
		log.nextIndex = nextIdx
	}

	return log, nil
}

func (l *Log) Append(entry Entry) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entry.Kind = "entry"
	entry.Index = l.nextIndex
	if entry.Time == "" {
		entry.Time = time.Now().Format("2006-01-02 15:04:05")
	}

	hashHex, macHex, err := sealEntry(entry, l.lastHashHex, l.key)
	if err != nil {
		return err
	}

	signed := signedEntry{Entry: entry, PrevHash: l.lastHashHex, Hash: hashHex, HMAC: macHex}
	if err = writeJSONLine(l.file, signed); err != nil {
		return err
	}

	l.lastHashHex = hashHex
	l.nextIndex++
	return nil
}

// RuleChange records one gateway call and its outcome.
func (l *Log) RuleChange(action string, rule ufw.Rule, applyErr error) error {
	entry := Entry{
		Actor:  local.Actor(),
		Action: action,
		Rule:   rule.Command(),
		Result: "applied",
	}
	if applyErr != nil {
		entry.Result = "failed"
		entry.Error = applyErr.Error()
	}
	return l.Append(entry)
}

func (l *Log) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.file.Close()
}

func sealEntry(entry Entry, prevHashHex string, key []byte) (hashHex, macHex string, err error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return "", "", err
	}

	hasher := sha256.New()
	hasher.Write([]byte(prevHashHex))
	hasher.Write(payload)
	hashHex = hex.EncodeToString(hasher.Sum(nil))

	mac := hmac2.New(sha256.New, key)
	mac.Write([]byte(hashHex))
	macHex = hex.EncodeToString(mac.Sum(nil))
	return hashHex, macHex, nil
}

func writeJSONLine(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", payload)
	return err
}

func hostname() string {
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}
