package yacy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/queuewatch/internal/domain"
	"github.com/mmcdole/queuewatch/internal/xmltree"
)

const queueXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <indexingqueue>
    <entry>
      <initiator>peer-a</initiator>
      <depth>0</depth>
      <modified>20240101120000</modified>
      <anchor>Home</anchor>
      <url>http://example.org/</url>
      <size>2048</size>
      <hash>abc123</hash>
      <inProcess>false</inProcess>
    </entry>
    <entry>
      <initiator>peer-b</initiator>
      <depth>2</depth>
      <url>http://example.org/b</url>
      <hash>def456</hash>
      <inProcess>true</inProcess>
      <extra>ignored</extra>
    </entry>
    <entry>
      <inProcess>TRUE</inProcess>
    </entry>
  </indexingqueue>
</response>`

func TestParseQueue(t *testing.T) {
	doc, err := xmltree.Parse([]byte(queueXML))
	require.NoError(t, err)

	want := []domain.QueueEntry{
		{
			Initiator: "peer-a",
			Depth:     "0",
			Modified:  "20240101120000",
			Anchor:    "Home",
			URL:       "http://example.org/",
			Size:      "2048",
			Hash:      "abc123",
		},
		{
			Initiator: "peer-b",
			Depth:     "2",
			URL:       "http://example.org/b",
			Hash:      "def456",
			InProcess: true,
		},
		// only the literal "true" marks an entry as in process
		{},
	}
	if diff := cmp.Diff(want, ParseQueue(doc)); diff != "" {
		t.Errorf("ParseQueue mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQueue_NoEntries(t *testing.T) {
	for name, body := range map[string]string{
		"empty queue":   `<response><indexingqueue/></response>`,
		"missing queue": `<response><other/></response>`,
		"empty root":    `<response/>`,
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := xmltree.Parse([]byte(body))
			require.NoError(t, err)
			assert.Empty(t, ParseQueue(doc))
		})
	}

	assert.Empty(t, ParseQueue(nil))
}

func TestParseStatus(t *testing.T) {
	doc, err := xmltree.Parse([]byte(`<response><status>
<indexingqueue><size>12</size><max>100</max></indexingqueue>
<ppm>37</ppm></status></response>`))
	require.NoError(t, err)

	got := ParseStatus(doc)
	assert.Equal(t, domain.StatusSnapshot{QueueSize: "12", QueueMax: "100", ProcessingRate: "37"}, got)
}

func TestParseStatus_MissingPPM(t *testing.T) {
	doc, err := xmltree.Parse([]byte(`<response><status>
<indexingqueue><size>3</size><max>50</max></indexingqueue>
</status></response>`))
	require.NoError(t, err)

	got := ParseStatus(doc)
	assert.Equal(t, "", got.ProcessingRate)
	assert.Equal(t, "3", got.QueueSize)
	assert.Equal(t, "50", got.QueueMax)
}

func TestParseStatus_NilDocument(t *testing.T) {
	assert.Equal(t, domain.StatusSnapshot{}, ParseStatus(nil))
}

func TestDeleteHref(t *testing.T) {
	assert.Equal(t, "IndexCreateIndexingQueue_p.html?deleteEntry=abc123", DeleteHref("abc123"))
}
