package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// ProtocolVersion is reported to clients in ConnectionInfo.
const ProtocolVersion = "1.0"

// Session represents a single client connection.
type Session struct {
	UUID        uuid.UUID `json:"uuid" zap:"uuid"`
	RemoteAddr  string    `json:"remoteAddr" zap:"remoteAddr"`
	ConnectedAt time.Time `json:"connectedAt" zap:"connectedAt"`
	Replayed    bool      `json:"replayed" zap:"replayed"`
}

// ConnectionInfo is returned to clients that ask which server they are talking to.
type ConnectionInfo struct {
	PID            int    `json:"pid"`
	Implementation string `json:"implementation"`
	Version        string `json:"version"`
	Ready          bool   `json:"ready"`
}

// ProjectConfig describes the project the daemon serves.
type ProjectConfig struct {
	Root        string   `yaml:"root"`
	CacheDir    string   `yaml:"cacheDir"`
	Descriptor  string   `yaml:"descriptor"`
	ModulePath  string   `yaml:"modulePath"`
	SourceRoots []string `yaml:"sourceRoots"`
	Archives    []string `yaml:"archives"`
	TargetDirs  []string `yaml:"targetDirs"`
}
