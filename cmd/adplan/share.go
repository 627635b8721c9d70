package main

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/pkg/codec"
	"github.com/akeil/adplan/pkg/history"
	"github.com/akeil/adplan/pkg/relay"
)

func doClip(s settings, ref string, page int) error {
	p, err := mustLoadPlan(s, ref)
	if err != nil {
		return err
	}
	pg, err := p.Page(page)
	if err != nil {
		return err
	}

	text, err := codec.EncodeClipboard(pg.Drawables)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

// doPaste adds the drawables from clipboard text to a page. Pasted
// drawables get new IDs so the same text can be pasted more than once.
func doPaste(s settings, name string, page int) error {
	repo := setupStorage(s)
	p, err := repo.Load(name)
	if err != nil {
		return err
	}
	pg, err := p.Page(page)
	if err != nil {
		return err
	}

	data, err := ioutil.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	drawables, err := codec.DecodeClipboard(strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}

	h := history.NewManager()
	err = h.SetActivePage(page)
	if err != nil {
		return err
	}
	h.RecordAction(pg.Drawables, "paste")

	for _, d := range drawables {
		d.ID = uuid.New()
	}
	pg.Add(drawables...)

	err = pg.Validate()
	if err != nil {
		snap, _ := h.Undo()
		pg.Drawables = snap.Drawables
		return adplan.Wrap(err, "%v reverted", snap.Description)
	}

	err = repo.Save(p)
	if err != nil {
		return err
	}
	fmt.Printf("%v pasted %d drawables to page %d of %q\n", checkmark, len(drawables), page, name)
	return nil
}

func doPush(s settings, ref, url string) error {
	p, err := mustLoadPlan(s, ref)
	if err != nil {
		return err
	}

	if url == "" {
		url = s.cfg.Relay.URL
	}
	if url == "" {
		return fmt.Errorf("no relay URL configured")
	}

	header := http.Header{}
	if s.cfg.Relay.Token != "" {
		header.Set("Authorization", "Bearer "+s.cfg.Relay.Token)
	}

	peer := relay.NewPeer(url, header)
	err = peer.Connect()
	if err != nil {
		return err
	}
	defer peer.Close()

	for i, pg := range p.Pages {
		fmt.Printf("%v push page %d %q\n", ellipsis, i, pg.Name)
		err = peer.SendPage(i, pg.Drawables)
		if err != nil {
			fmt.Printf("%v Failed to push page %d: %v\n", crossmark, i, err)
			return err
		}
	}

	fmt.Printf("%v pushed %d pages of %q\n", checkmark, p.NumPages(), p.Name)
	return nil
}
