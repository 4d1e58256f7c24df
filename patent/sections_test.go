package patent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionUnknownName(t *testing.T) {
	doc := `<html><body><article>
<section itemscope itemprop="summary"><p>whatever</p></section>
</article></body></html>`

	record, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"summary":null}`, marshal(t, record))
}

func TestSectionMissingItemprop(t *testing.T) {
	doc := `<html><body><article>
<section itemscope></section>
</article></body></html>`

	record, err := Parse(doc)
	assert.ErrorIs(t, err, ErrSchema)
	assert.Nil(t, record)
}

func TestAbstractMissingElement(t *testing.T) {
	doc := `<html><body><article>
<section itemscope itemprop="abstract"><p>text without an abstract element</p></section>
</article></body></html>`

	record, err := Parse(doc)
	assert.ErrorIs(t, err, ErrSchema)
	assert.Nil(t, record)
}

func TestDescriptionParts(t *testing.T) {
	doc := `<html><body><article>
<section itemscope itemprop="description">
<div class="description" lang="EN">
<div class="description-line" num="0001">Intro</div>
<heading>FIELD</heading>
<div class="description-line">Line A</div>
<div class="description-line" num="0002">Line B</div>
<heading>BACKGROUND</heading>
</div>
</section>
</article></body></html>`

	record, err := Parse(doc)
	require.NoError(t, err)

	description, ok := record.Get("description")
	require.True(t, ok)

	want := `{"lang":"EN","parts":[` +
		`{"heading":"","lines":[{"num":"0001","text":"Intro"}]},` +
		`{"heading":"FIELD","lines":[{"num":null,"text":"Line A"},{"num":"0002","text":"Line B"}]},` +
		`{"heading":"BACKGROUND","lines":[]}]}`
	assert.Equal(t, want, marshal(t, description))
}

func TestDescriptionMissingElement(t *testing.T) {
	doc := `<html><body><article>
<section itemscope itemprop="description"><p>bare</p></section>
</article></body></html>`

	record, err := Parse(doc)
	assert.ErrorIs(t, err, ErrSchema)
	assert.Nil(t, record)
}

// Claim wrappers nest at different depths on different pages; entries are
// found from their claim-text leaves, so one wrapper with several leaves
// still yields a single entry.
func TestClaimsDeduplication(t *testing.T) {
	doc := `<html><body><article>
<section itemscope itemprop="claims">
<div class="claims" count="2">
<div class="claim" num="1"><div class="claim-text">First claim.<div class="claim-text">Nested detail.</div></div></div>
<div><div><div class="claim" num="2"><div><div class="claim-text">Second claim.</div></div></div></div></div>
</div>
</section>
</article></body></html>`

	record, err := Parse(doc)
	require.NoError(t, err)

	claims, ok := record.Get("claims")
	require.True(t, ok)

	want := `{"count":"2","claims":[` +
		`{"num":"1","text":"First claim.Nested detail."},` +
		`{"num":"2","text":"Second claim."}]}`
	assert.Equal(t, want, marshal(t, claims))
}

func TestClaimsMissingRoot(t *testing.T) {
	doc := `<html><body><article>
<section itemscope itemprop="claims"><p>no claims element</p></section>
</article></body></html>`

	record, err := Parse(doc)
	assert.ErrorIs(t, err, ErrSchema)
	assert.Nil(t, record)
}

func TestClaimsTextWithoutClaimAncestor(t *testing.T) {
	doc := `<html><body><article>
<section itemscope itemprop="claims">
<div class="claims"><div class="claim-text">orphan</div></div>
</section>
</article></body></html>`

	record, err := Parse(doc)
	assert.ErrorIs(t, err, ErrSchema)
	assert.Nil(t, record)
}

func TestAbstractKeepsAttributes(t *testing.T) {
	doc := `<html><body><article>
<section itemscope itemprop="abstract">
<abstract id="a1" lang="EN"><div>A widget.</div></abstract>
</section>
</article></body></html>`

	record, err := Parse(doc)
	require.NoError(t, err)

	abstract, ok := record.Get("abstract")
	require.True(t, ok)
	assert.Equal(t, `{"id":"a1","lang":"EN","content":"A widget."}`, marshal(t, abstract))
}
