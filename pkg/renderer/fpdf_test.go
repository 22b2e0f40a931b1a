package renderer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocument(t *testing.T) (doc Document) {
	t.Helper()

	factory, err := NewPDFFactory(Options{
		PageSize:     PageA4,
		CreationDate: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)

	doc, err = factory.CreateDocument()
	require.NoError(t, err)
	return doc
}

func TestPDFDocumentRoundTrip(t *testing.T) {
	doc := newTestDocument(t)

	font, err := doc.EmbedStandardFont(Helvetica)
	require.NoError(t, err)
	assert.Equal(t, Helvetica, font.Name)

	page, err := doc.AddPage()
	require.NoError(t, err)

	width, height := page.Size()
	assert.InDelta(t, A4Width, width, 0.01)
	assert.InDelta(t, A4Height, height, 0.01)

	page.DrawText("Hello", TextOptions{X: 50, Y: 100, Size: 12, Font: font, Color: Black})

	data, err := doc.Serialize()
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "50.00 100.00 Td (Hello) Tj")
	assert.Contains(t, string(data), "/BaseFont /Helvetica")
}

func TestPDFDocumentDrawsOffPage(t *testing.T) {
	doc := newTestDocument(t)

	font, err := doc.EmbedStandardFont(Helvetica)
	require.NoError(t, err)

	page, err := doc.AddPage()
	require.NoError(t, err)

	page.DrawText("Below the page", TextOptions{X: 60, Y: -40, Size: 12, Font: font})

	data, err := doc.Serialize()
	require.NoError(t, err)
	assert.Contains(t, string(data), "60.00 -40.00 Td (Below the page) Tj")
}

func TestPDFDocumentEncoding(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "ascii", text: "Name: Asha Rao", wantErr: false},
		{name: "latin accents", text: "Name: José Müller", wantErr: false},
		{name: "cp1252 extras", text: "Cost: €5 – “quoted”", wantErr: false},
		{name: "devanagari", text: "Name: आशा राव", wantErr: true},
		{name: "han", text: "Skills: 数据", wantErr: true},
		{name: "emoji", text: "Goal 🚀", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newTestDocument(t)

			font, err := doc.EmbedStandardFont(Helvetica)
			require.NoError(t, err)
			page, err := doc.AddPage()
			require.NoError(t, err)

			page.DrawText(tt.text, TextOptions{X: 50, Y: 100, Size: 12, Font: font, Color: Black})
			page.DrawText("after", TextOptions{X: 50, Y: 80, Size: 12, Font: font, Color: Black})

			data, err := doc.Serialize()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "WinAnsi")
				assert.Nil(t, data)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, string(data), "(after) Tj")
		})
	}
}

func TestPDFDocumentSerializeOnce(t *testing.T) {
	doc := newTestDocument(t)

	_, err := doc.AddPage()
	require.NoError(t, err)

	_, err = doc.Serialize()
	require.NoError(t, err)

	_, err = doc.Serialize()
	assert.Error(t, err)

	_, err = doc.AddPage()
	assert.Error(t, err)
}

func TestPDFDocumentUnknownFont(t *testing.T) {
	doc := newTestDocument(t)

	_, err := doc.EmbedStandardFont("Comic Sans")
	assert.Error(t, err)
}

func TestPDFDocumentFontNotEmbedded(t *testing.T) {
	doc := newTestDocument(t)

	page, err := doc.AddPage()
	require.NoError(t, err)

	page.DrawText("orphan", TextOptions{X: 10, Y: 10, Size: 12, Font: Font{Name: Courier}})

	_, err = doc.Serialize()
	assert.Error(t, err)
}

func TestNewPDFFactoryPageSizes(t *testing.T) {
	tests := []struct {
		size      string
		wantError bool
	}{
		{size: "", wantError: false},
		{size: PageA4, wantError: false},
		{size: PageLetter, wantError: false},
		{size: PageLegal, wantError: false},
		{size: PageA3, wantError: false},
		{size: PageA5, wantError: false},
		{size: "Tabloid", wantError: true},
		{size: "a4", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			_, err := NewPDFFactory(Options{PageSize: tt.size})
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStandardFonts(t *testing.T) {
	assert.True(t, IsStandardFont(Helvetica))
	assert.True(t, IsStandardFont(TimesBoldItalic))
	assert.False(t, IsStandardFont("helvetica"))
	assert.Len(t, standardFonts, 14)
}

func TestChannel(t *testing.T) {
	assert.Equal(t, 0, channel(-1))
	assert.Equal(t, 0, channel(0))
	assert.Equal(t, 128, channel(0.5))
	assert.Equal(t, 255, channel(1))
	assert.Equal(t, 255, channel(3))
}
