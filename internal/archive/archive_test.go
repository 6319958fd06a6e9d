package archive

import (
	"bytes"
	"testing"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	files := []Entry{
		{Name: "a.txt", MimeType: "text/plain", Data: []byte("Hello")},
		{Name: "b.txt", MimeType: "text/plain", Data: []byte("World")},
	}

	packed, meta, err := Pack(files, 1700000000000)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if meta.MimeType != "application/x-file-archive" {
		t.Errorf("mimeType = %q", meta.MimeType)
	}

	got, err := Unpack(packed)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Name != "a.txt" || !bytes.Equal(got[0].Data, []byte("Hello")) {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[1].Name != "b.txt" || !bytes.Equal(got[1].Data, []byte("World")) {
		t.Errorf("entry 1 = %+v", got[1])
	}
}

func TestEntryMayContainSeparatorBytes(t *testing.T) {
	tricky := []byte("before " + Separator + " after")
	files := []Entry{{Name: "tricky.bin", MimeType: "application/octet-stream", Data: tricky}}

	packed, _, err := Pack(files, 1)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unpack(packed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got[0].Data, tricky) {
		t.Errorf("got %q; want %q", got[0].Data, tricky)
	}
}

func TestLooksLikeArchive(t *testing.T) {
	files := []Entry{{Name: "a", MimeType: "text/plain", Data: []byte("x")}}
	packed, _, err := Pack(files, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !LooksLikeArchive(packed) {
		t.Error("expected packed archive to be recognized")
	}
	if LooksLikeArchive([]byte("just some plain bytes")) {
		t.Error("plain bytes should not look like an archive")
	}
}

func TestUnpackRejectsMissingSeparator(t *testing.T) {
	_, err := Unpack([]byte("no separator here"))
	if err == nil {
		t.Fatal("expected an error for missing separator")
	}
}

func TestUnpackRejectsOutOfRangeOffset(t *testing.T) {
	bad := []byte(`{"fileCount":1,"createdAt":1,"entries":[{"name":"x","size":999,"mimeType":"","offset":0}]}` + Separator + "short")
	_, err := Unpack(bad)
	if err == nil {
		t.Fatal("expected an error for an out-of-range offset")
	}
}

func TestPackEmptyFileList(t *testing.T) {
	packed, meta, err := Pack(nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if meta.MimeType != "application/x-file-archive" {
		t.Errorf("mimeType = %q", meta.MimeType)
	}
	entries, err := Unpack(packed)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}
