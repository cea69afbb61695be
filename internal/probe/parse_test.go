package probe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linuxOutput = `PING example.com (93.184.216.34) 56(84) bytes of data.
64 bytes from 93.184.216.34: icmp_seq=1 ttl=56 time=12.3 ms
64 bytes from 93.184.216.34: icmp_seq=2 ttl=56 time=15.7 ms

--- example.com ping statistics ---
2 packets transmitted, 2 received, 0% packet loss, time 1001ms
rtt min/avg/max/mdev = 12.300/14.000/15.700/1.700 ms
`

const windowsOutput = `Pinging 8.8.8.8 with 32 bytes of data:
Reply from 8.8.8.8: bytes=32 time=20ms TTL=117
Reply from 8.8.8.8: bytes=32 time=22ms TTL=117
Reply from 8.8.8.8: bytes=32 time=27ms TTL=117
`

const allLostOutput = `PING 10.255.255.1 (10.255.255.1) 56(84) bytes of data.

--- 10.255.255.1 ping statistics ---
3 packets transmitted, 0 received, 100% packet loss, time 2043ms
`

func TestParse_Linux(t *testing.T) {
	s, bad := Parse(linuxOutput)
	assert.Empty(t, bad)
	// the summary "time 1001ms" has no '=' and must not count
	assert.Equal(t, Samples{12.3, 15.7}, s)

	mean, err := Mean(s)
	require.NoError(t, err)
	assert.InDelta(t, 14.0, mean, 1e-9)
}

func TestParse_Windows(t *testing.T) {
	s, bad := Parse(windowsOutput)
	assert.Empty(t, bad)
	assert.Equal(t, Samples{20, 22, 27}, s)
}

func TestParse_NoTokens(t *testing.T) {
	s, bad := Parse(allLostOutput)
	assert.Empty(t, s)
	assert.Empty(t, bad)

	_, err := Mean(s)
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestParse_SkipsMalformed(t *testing.T) {
	s, bad := Parse("time=1.2.3 ms time=4 ms time=5.5 ms")
	assert.Equal(t, Samples{4, 5.5}, s)
	require.Len(t, bad, 1)

	var me *MalformedSampleError
	require.True(t, errors.As(bad[0], &me))
	assert.Equal(t, "time=1.2.3", me.Token)
}

func TestParse_AllMalformedIsNoSamples(t *testing.T) {
	s, bad := Parse("time=1.2.3 time=9.9.9")
	assert.Len(t, bad, 2)
	_, err := Mean(s)
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestParse_PreservesOrderAndCount(t *testing.T) {
	raw := ""
	for _, v := range []string{"3", "1.5", "100", "0.042", "7"} {
		raw += "reply from host: time=" + v + " ms\n"
	}
	s, bad := Parse(raw)
	assert.Empty(t, bad)
	assert.Equal(t, Samples{3, 1.5, 100, 0.042, 7}, s)

	mean, err := Mean(s)
	require.NoError(t, err)
	assert.InDelta(t, (3+1.5+100+0.042+7)/5, mean, 1e-9)
}
