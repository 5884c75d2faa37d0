package index

import (
	"encoding/binary"
	"strconv"
	"time"
)

const publishedTimeLen = 8 + 4

// key = invSec(8) + invNsec(4) + 0x00 + slug
//
// invSec flips the sign bit of the Unix seconds so instants before 1970
// still sort below later ones, then inverts so a forward cursor walks
// newest first. Seconds and nanoseconds are stored apart because
// UnixNano overflows outside the years 1678 to 2262.
func makePublishedKey(t time.Time, slug string) []byte {
	invSec := ^(uint64(t.Unix()) ^ (1 << 63))
	invNsec := ^uint32(t.Nanosecond())

	buf := make([]byte, publishedTimeLen, publishedTimeLen+1+len(slug))
	binary.BigEndian.PutUint64(buf[:8], invSec)
	binary.BigEndian.PutUint32(buf[8:publishedTimeLen], invNsec)

	buf = append(buf, 0x00)
	buf = append(buf, slug...)
	return buf
}

func slugFromPublishedKey(k []byte) string {
	if len(k) < publishedTimeLen+2 {
		return ""
	}
	if k[publishedTimeLen] != 0x00 {
		return ""
	}
	return string(k[publishedTimeLen+1:])
}

func idKey(id int) []byte {
	return []byte(strconv.Itoa(id))
}
