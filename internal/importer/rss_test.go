package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/matsen/paperfeed/internal/reference"
)

const apsRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:prism="http://prismstandard.org/namespaces/basic/2.0/">
<channel>
<title>Physical Review Letters - Recent Articles</title>
<link>https://journals.aps.org/prl/recent</link>
<description>Recent articles</description>
<item>
<title>Topological order in twisted bilayers</title>
<link>http://link.aps.org/doi/10.1103/abcd-1234</link>
<description>&lt;p&gt;We report order.&lt;/p&gt; [Phys. Rev. Lett. 136, 031001] Published Wed Jan 21, 2026</description>
<dc:creator>Jane Doe, John Smith, and Ann Lee</dc:creator>
<prism:doi>10.1103/abcd-1234</prism:doi>
<pubDate>Wed, 21 Jan 2026 10:00:00 +0000</pubDate>
</item>
<item>
<title>Topological order in twisted bilayers (duplicate)</title>
<link>http://link.aps.org/doi/10.1103/abcd-1234</link>
<description>Again.</description>
<prism:doi>10.1103/abcd-1234</prism:doi>
</item>
<item>
<title>Second result</title>
<link>https://link.aps.org/doi/10.1103/wxyz-5678</link>
<description>Plain.</description>
<dc:creator>Bo Kim</dc:creator>
<pubDate>Thu, 22 Jan 2026 10:00:00 +0000</pubDate>
</item>
</channel>
</rss>`

func TestParseRSS_APS(t *testing.T) {
	items, err := ParseRSS(strings.NewReader(apsRSS), Source{})
	if err != nil {
		t.Fatalf("ParseRSS() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("ParseRSS() returned %d items, want 2", len(items))
	}

	a := items[0]
	if a.UID != "doi:10.1103/abcd-1234" {
		t.Errorf("UID = %q", a.UID)
	}
	if a.JournalKey != "PRL" || a.Journal != "Physical Review Letters" {
		t.Errorf("JournalKey/Journal = %q/%q", a.JournalKey, a.Journal)
	}
	if a.Publisher != "American Physical Society" {
		t.Errorf("Publisher = %q", a.Publisher)
	}
	if a.Volume != "136" || a.Pages != "031001" {
		t.Errorf("Volume/Pages = %q/%q", a.Volume, a.Pages)
	}
	if a.Abstract != "We report order." {
		t.Errorf("Abstract = %q", a.Abstract)
	}
	if a.Date != "2026-01-21T10:00:00Z" {
		t.Errorf("Date = %q", a.Date)
	}
	if len(a.Authors) != 3 || a.Authors[0] != "Jane Doe" || a.Authors[2] != "Ann Lee" {
		t.Errorf("Authors = %v", a.Authors)
	}
	if a.URL != "https://link.aps.org/doi/10.1103/abcd-1234" {
		t.Errorf("URL = %q", a.URL)
	}

	if items[1].DOI != "10.1103/wxyz-5678" {
		t.Errorf("DOI from link = %q", items[1].DOI)
	}
}

const arxivAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
<title>arXiv cond-mat updates</title>
<id>urn:arxiv:cond-mat</id>
<updated>2026-01-20T00:00:00Z</updated>
<entry>
<id>http://arxiv.org/abs/2601.01234v1</id>
<title>Majorana modes</title>
<link href="http://arxiv.org/abs/2601.01234v1"/>
<published>2026-01-19T18:00:00Z</published>
<updated>2026-01-19T18:00:00Z</updated>
<summary>arXiv:2601.01234v1 Announce Type: new Abstract: We find modes.</summary>
<author><name>Ann Lee</name></author>
<author><name>Bo Kim</name></author>
</entry>
</feed>`

func TestParseRSS_ArXivAtom(t *testing.T) {
	items, err := ParseRSS(strings.NewReader(arxivAtom), Source{})
	if err != nil {
		t.Fatalf("ParseRSS() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("ParseRSS() returned %d items, want 1", len(items))
	}
	it := items[0]
	if it.UID != "arxiv:2601.01234" || it.ArXiv != "2601.01234" {
		t.Errorf("UID/ArXiv = %q/%q", it.UID, it.ArXiv)
	}
	if it.JournalKey != reference.JournalArXiv || it.Type != reference.TypePreprint {
		t.Errorf("JournalKey/Type = %q/%q", it.JournalKey, it.Type)
	}
	if it.Abstract != "We find modes." {
		t.Errorf("Abstract = %q", it.Abstract)
	}
	if len(it.Authors) != 2 {
		t.Errorf("Authors = %v", it.Authors)
	}
	if it.Publisher != "" {
		t.Errorf("Publisher = %q, want empty", it.Publisher)
	}
}

func TestParseRSS_SourceOverride(t *testing.T) {
	items, err := ParseRSS(strings.NewReader(apsRSS), Source{JournalKey: "PRB", Type: "accepted"})
	if err != nil {
		t.Fatalf("ParseRSS() error = %v", err)
	}
	if items[0].JournalKey != "PRB" || items[0].Type != reference.TypeAccepted {
		t.Errorf("JournalKey/Type = %q/%q", items[0].JournalKey, items[0].Type)
	}
}

func TestImporter_RSSErrors(t *testing.T) {
	im := New(nil)
	if _, err := im.RSS(strings.NewReader("not a feed"), Source{}); err == nil {
		t.Error("RSS() on garbage should fail")
	}
	empty := `<rss version="2.0"><channel><title>Empty</title></channel></rss>`
	if _, err := im.RSS(strings.NewReader(empty), Source{}); !errors.Is(err, ErrNoEntries) {
		t.Errorf("RSS() on empty feed error = %v, want ErrNoEntries", err)
	}
}
