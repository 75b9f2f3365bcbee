// Copyright (c) 2019-2026, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package namespaces

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ccoveille/go-safecast"
)

// SelfUIDMap is the uid map of the current process.
const SelfUIDMap = "/proc/self/uid_map"

// IDMap is a line of a /proc/<pid>/uid_map file.
type IDMap struct {
	ContainerID uint32
	HostID      uint32
	Size        uint32
}

// Contains returns true if id is a namespace id covered by the mapping.
func (m IDMap) Contains(id uint32) bool {
	return id >= m.ContainerID && uint64(id) < uint64(m.ContainerID)+uint64(m.Size)
}

// ReadIDMap parses a uid_map or gid_map file.
func ReadIDMap(path string) ([]IDMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var maps []IDMap
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed line in %s: %q", path, scanner.Text())
		}

		var ids [3]uint32
		for i, field := range fields {
			v, err := strconv.ParseUint(field, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("failed to convert field %s of %s: %w", field, path, err)
			}
			ids[i] = uint32(v)
		}
		maps = append(maps, IDMap{ContainerID: ids[0], HostID: ids[1], Size: ids[2]})
	}
	return maps, scanner.Err()
}

// isHostMap reports whether maps is the identity mapping of the initial
// user namespace.
func isHostMap(maps []IDMap) bool {
	// a size of 4294967295 means the process is running
	// in the host user namespace
	return len(maps) == 1 && maps[0].ContainerID == 0 && maps[0].Size == ^uint32(0)
}

// IsInsideUserNamespace checks if the process reading uidMap is running in
// a user namespace. An unreadable map means user namespaces are not supported.
func IsInsideUserNamespace(uidMap string) bool {
	maps, err := ReadIDMap(uidMap)
	if err != nil {
		return false
	}
	return !isHostMap(maps)
}

// HostUID returns the host uid of uid according to uidMap. uid is returned
// unchanged when user namespaces are not supported.
func HostUID(uidMap string, uid int) (uint32, error) {
	id, err := safecast.ToUint32(uid)
	if err != nil {
		return 0, err
	}

	maps, err := ReadIDMap(uidMap)
	if os.IsNotExist(err) {
		return id, nil
	} else if err != nil {
		return 0, fmt.Errorf("failed to read: %s: %s", uidMap, err)
	}

	for _, m := range maps {
		if m.Contains(id) {
			return m.HostID + (id - m.ContainerID), nil
		}
	}
	return 0, fmt.Errorf("no host uid mapped to uid %d in %s", uid, uidMap)
}
